package registry

import pcommon "github.com/privadex/aggregator/internal/common"

// XCMPair is one bridgeable (src, dest) token pair: src_token on one chain
// is the same underlying asset as dest_token on another chain in the same
// relay group, reachable by an XCM transfer. Styled after the teacher's
// Bridge.TokenMappings (chain -> token -> wrapped-token) but expressed as an
// explicit pair list since a token's dest-side representation isn't a
// simple string rewrite (native <-> XC-20 asset id).
type XCMPair struct {
	Src  pcommon.UniversalTokenId
	Dest pcommon.UniversalTokenId
}

// XCMPairs is the static bridgeable-asset table, mirroring the relationships
// implied by universal_token_id_registry: DOT's three representations
// (native on Polkadot, XC-20 on Moonbeam, XC-20 on Astar) bridge pairwise,
// and each parachain's native token bridges to its own XC-20 representation
// on the sibling parachain.
var XCMPairs = []XCMPair{
	{Src: DotNative, Dest: DotOnMoonbeam},
	{Src: DotOnMoonbeam, Dest: DotNative},
	{Src: DotNative, Dest: DotOnAstar},
	{Src: DotOnAstar, Dest: DotNative},
	{Src: DotOnMoonbeam, Dest: DotOnAstar},
	{Src: DotOnAstar, Dest: DotOnMoonbeam},

	{Src: GlmrNative, Dest: GlmrOnAstar},
	{Src: GlmrOnAstar, Dest: GlmrNative},

	{Src: AstrNative, Dest: AstrOnMoonbeam},
	{Src: AstrOnMoonbeam, Dest: AstrNative},
}

// BridgeDestinations returns every token src can XCM-bridge to.
func BridgeDestinations(src pcommon.UniversalTokenId) []pcommon.UniversalTokenId {
	var out []pcommon.UniversalTokenId
	for _, pair := range XCMPairs {
		if pair.Src == src {
			out = append(out, pair.Dest)
		}
	}
	return out
}

// CanBridge reports whether src has a registered XCM path to dest.
func CanBridge(src, dest pcommon.UniversalTokenId) bool {
	for _, pair := range XCMPairs {
		if pair.Src == src && pair.Dest == dest {
			return true
		}
	}
	return false
}
