// Package planner compiles a router.GraphSolution into a validated
// ExecutionPlan: a prestart transfer, one ExecutionPath of fused coarser
// steps, and a postend transfer. Step status types follow the teacher's
// core/relay-chain/escrow/escrow.go iota-enum + String() pattern,
// generalized to the two status lattices spec.md §3 defines.
package planner

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/registry"
)

// EthStepStatus is the status lattice an EVM-local step advances through:
// NotStarted -> Submitted -> {Confirmed | Failed | Dropped}.
type EthStepStatus int

const (
	EthNotStarted EthStepStatus = iota
	EthSubmitted
	EthConfirmed
	EthFailed
	EthDropped
)

func (s EthStepStatus) String() string {
	switch s {
	case EthNotStarted:
		return "not_started"
	case EthSubmitted:
		return "submitted"
	case EthConfirmed:
		return "confirmed"
	case EthFailed:
		return "failed"
	case EthDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether s is one of the three terminal states.
func (s EthStepStatus) IsTerminal() bool {
	return s == EthConfirmed || s == EthFailed || s == EthDropped
}

// CrossChainStepStatus is the status lattice an XCM transfer advances
// through: NotStarted -> Submitted -> LocalConfirmed -> {Confirmed | Failed
// | Dropped}.
type CrossChainStepStatus int

const (
	XCMNotStarted CrossChainStepStatus = iota
	XCMSubmitted
	XCMLocalConfirmed
	XCMConfirmed
	XCMFailed
	XCMDropped
)

func (s CrossChainStepStatus) String() string {
	switch s {
	case XCMNotStarted:
		return "not_started"
	case XCMSubmitted:
		return "submitted"
	case XCMLocalConfirmed:
		return "local_confirmed"
	case XCMConfirmed:
		return "confirmed"
	case XCMFailed:
		return "failed"
	case XCMDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether s is one of the three terminal states.
func (s CrossChainStepStatus) IsTerminal() bool {
	return s == XCMConfirmed || s == XCMFailed || s == XCMDropped
}

// DexRouterFunction selects which Uniswap-v2-shaped router call a fused
// EthDexSwap step issues.
type DexRouterFunction int

const (
	SwapExactTokensForTokens DexRouterFunction = iota
	SwapExactETHForTokens
	SwapExactTokensForETH
)

func (f DexRouterFunction) String() string {
	switch f {
	case SwapExactTokensForTokens:
		return "swapExactTokensForTokens"
	case SwapExactETHForTokens:
		return "swapExactETHForTokens"
	case SwapExactTokensForETH:
		return "swapExactTokensForETH"
	default:
		return "unknownRouterFunction"
	}
}

// ExecutionStepKind distinguishes the step variants an ExecutionPath (or the
// prestart/postend transfers) can hold.
type ExecutionStepKind int

const (
	StepEthSend ExecutionStepKind = iota
	StepERC20Transfer
	StepEthWrap
	StepEthUnwrap
	StepEthDexSwap
	StepXCMTransfer
)

func (k ExecutionStepKind) String() string {
	switch k {
	case StepEthSend:
		return "EthSend"
	case StepERC20Transfer:
		return "ERC20Transfer"
	case StepEthWrap:
		return "EthWrap"
	case StepEthUnwrap:
		return "EthUnwrap"
	case StepEthDexSwap:
		return "EthDexSwap"
	case StepXCMTransfer:
		return "XCMTransfer"
	default:
		return "UnknownStep"
	}
}

// ExecutionStep is one coarse unit of work the executor drives forward. The
// fields relevant to Kind are populated; others are zero.
type ExecutionStep struct {
	ID   pcommon.Uuid
	Kind ExecutionStepKind

	Chain    pcommon.UniversalChainId
	SrcAddr  pcommon.UniversalAddress
	DestAddr pcommon.UniversalAddress
	AmountIn *big.Int // nil until the prior step resolves at runtime

	// EthSend/ERC20Transfer.
	TokenAddr *ethcommon.Address // nil for EthSend (native transfer)

	// EthWrap/EthUnwrap.
	WETHAddr ethcommon.Address

	// EthDexSwap.
	RouterFunction DexRouterFunction
	RouterAddr     ethcommon.Address
	TokenPath      []pcommon.UniversalTokenId
	AmountOutMin   *big.Int

	// XCMTransfer.
	SrcToken        pcommon.UniversalTokenId
	DestToken       pcommon.UniversalTokenId
	DestChain       pcommon.UniversalChainId
	BridgeFeeNative uint64

	EthStatus   EthStepStatus
	XCMStatus   CrossChainStepStatus
	AmountOut   *big.Int // filled in once the step is confirmed
}

// IsCrossChain reports whether this step's status is tracked by the
// CrossChainStepStatus lattice (XCMTransfer) rather than EthStepStatus.
func (s ExecutionStep) IsCrossChain() bool {
	return s.Kind == StepXCMTransfer
}

// ExecutionPath is one ordered run of fused steps, with steps.len() >= 1.
type ExecutionPath struct {
	ID    pcommon.Uuid
	Steps []ExecutionStep
}

// ExecutionPlan is the compiler's output: a prestart transfer into escrow,
// exactly one ExecutionPath (single-path SOR per spec.md §4.4), and a
// postend transfer out of escrow.
type ExecutionPlan struct {
	ID         pcommon.Uuid
	Prestart   ExecutionStep
	Paths      []ExecutionPath
	Postend    ExecutionStep
	QuotedNetOut *big.Int // SOR's quoted output, net of per-edge estimated fees but not of the postend transfer's fee; exposed alongside the executor's actual observed amount_out
}

// dexRouterAddr resolves the router contract address a Dex's deployment
// uses. It has no caller; the validator compares each step's RouterAddr
// field directly.
func dexRouterAddr(dexID registry.DexID) ethcommon.Address {
	dex, ok := registry.LookupDex(dexID)
	if !ok {
		return ethcommon.Address{}
	}
	return dex.RouterAddr
}
