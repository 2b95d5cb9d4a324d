package indexer

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pcommon "github.com/privadex/aggregator/internal/common"
)

var (
	moonbeam = pcommon.NewParachainId(pcommon.Polkadot, 2004)
	astar    = pcommon.NewParachainId(pcommon.Polkadot, 2006)
	polka    = pcommon.NewRelayChainId(pcommon.Polkadot)
	kusama   = pcommon.NewRelayChainId(pcommon.Kusama)
)

func TestSelectTokenPalletNativeVsXC20(t *testing.T) {
	assert.Equal(t, BalancePallet, SelectTokenPallet(pcommon.NativeTokenId()))
	assert.Equal(t, AssetPallet, SelectTokenPallet(pcommon.XC20TokenId(pcommon.AssetIDUint64(1))))
}

func TestSelectMessagePassingDirection(t *testing.T) {
	dir, err := SelectMessagePassingDirection(moonbeam, astar)
	require.NoError(t, err)
	assert.Equal(t, Xcmp, dir)

	dir, err = SelectMessagePassingDirection(moonbeam, polka)
	require.NoError(t, err)
	assert.Equal(t, Ump, dir)

	dir, err = SelectMessagePassingDirection(polka, moonbeam)
	require.NoError(t, err)
	assert.Equal(t, Dmp, dir)

	_, err = SelectMessagePassingDirection(polka, kusama)
	assert.ErrorIs(t, err, ErrBothRelayChain)
}

type fakeLookup struct {
	record *TransferRecord
}

func (f *fakeLookup) FindIncomingTransfer(ctx context.Context, destChain pcommon.UniversalChainId, destAddr pcommon.UniversalAddress, destToken pcommon.UniversalTokenId, afterBlock uint64) (*TransferRecord, error) {
	return f.record, nil
}

func TestAdapterFindTransferClassifiesPalletAndDirection(t *testing.T) {
	destToken := pcommon.UniversalTokenId{Chain: astar, ID: pcommon.NativeTokenId()}

	lookup := &fakeLookup{record: &TransferRecord{AmountOut: big.NewInt(100)}}
	adapter := NewAdapter(map[pcommon.UniversalChainId]Lookup{astar: lookup})

	record, err := adapter.FindTransfer(context.Background(), moonbeam, astar, pcommon.UniversalAddress{}, destToken, 0)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, BalancePallet, record.Pallet)
	assert.Equal(t, Xcmp, record.Direction)
}

func TestAdapterFindTransferUnsupportedChain(t *testing.T) {
	adapter := NewAdapter(map[pcommon.UniversalChainId]Lookup{})
	_, err := adapter.FindTransfer(context.Background(), moonbeam, astar, pcommon.UniversalAddress{}, pcommon.UniversalTokenId{}, 0)
	assert.Error(t, err)
}

func TestAdapterFindTransferNotYetLanded(t *testing.T) {
	lookup := &fakeLookup{record: nil}
	adapter := NewAdapter(map[pcommon.UniversalChainId]Lookup{astar: lookup})
	record, err := adapter.FindTransfer(context.Background(), moonbeam, astar, pcommon.UniversalAddress{}, pcommon.UniversalTokenId{}, 0)
	require.NoError(t, err)
	assert.Nil(t, record)
}
