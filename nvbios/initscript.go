// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Init-script walker (§4.6). A length-decoding interpreter over ~40
// opcodes; it performs no side effects on hardware. It advances an offset
// past each opcode and snapshots three known register writes emitted by
// opcode 'z' (INIT_ZM_REG). The walk ends at opcode 'q' (0x71) or on the
// first unknown opcode, whichever comes first — both are a halt, never an
// infinite loop, since every step advances offset by at least 1 byte.
//
// The per-opcode length table is data, not code: opcodeLengths holds the
// fixed-length opcodes, and opcodeVarLen holds the small set of rules for
// variable-length ones. This makes the length table a direct equality
// check in tests instead of something buried in a long switch.

package nvbios

// opcodeLengths gives the total record length (including the opcode byte
// itself) for every fixed-length init-script opcode.
var opcodeLengths = map[byte]uint32{
	'2': 43, '3': 2, '6': 1, '7': 11, '8': 1, '9': 2,
	'J': 43, 'K': 9, 'R': 4, 'S': 3, 'V': 3, '[': 3, '_': 22,
	'b': 5, 'c': 1, 'e': 13, 'i': 5, 'k': 2, 'n': 13, 'o': 2,
	'q': 1, 'r': 1, 't': 3, 'u': 2, 'v': 2, 'x': 6, 'y': 7, 'z': 9,
	0x8E: 1, 0x90: 9, 0x91: 18, 0x97: 13,
}

// opcodeVarLen computes the record length for the variable-length
// opcodes ('M','Q','T','X',0x8F), each as a function of one ROM byte near
// the opcode.
var opcodeVarLen = map[byte]func(r *reader, off uint32) (uint32, error){
	'M': func(r *reader, off uint32) (uint32, error) { // INIT_ZM_I2C_BYTE
		n, err := r.u8(off + 3)
		return 4 + 2*uint32(n), err
	},
	'Q': func(r *reader, off uint32) (uint32, error) {
		n, err := r.u8(off + 4)
		return 5 + uint32(n), err
	},
	'T': func(r *reader, off uint32) (uint32, error) {
		n, err := r.u8(off + 1)
		return 2 + 2*uint32(n), err
	},
	'X': func(r *reader, off uint32) (uint32, error) {
		n, err := r.u8(off + 5)
		return 6 + 4*uint32(n), err
	},
	0x8F: func(r *reader, off uint32) (uint32, error) {
		n, err := r.u8(off + 6)
		return 7 + 32*uint32(n), err
	},
}

// opcodeLen returns the total length of the opcode record at off, or
// (0, false) if the opcode id is not recognized.
func opcodeLen(r *reader, off uint32) (uint32, bool, error) {
	id, err := r.u8(off)
	if err != nil {
		return 0, false, err
	}
	if n, ok := opcodeLengths[id]; ok {
		return n, true, nil
	}
	if fn, ok := opcodeVarLen[id]; ok {
		n, err := fn(r, off)
		return n, true, err
	}
	return 0, false, nil
}

const (
	opInitZMReg = 'z'
	opQuit      = 'q'

	regPipeCfg = 0x1540
	regNVPll   = 0x4000
	regMPll    = 0x4020
)

// initScriptResult carries the three cached register writes plus whatever
// non-fatal error terminated the walk (nil on a clean 'q').
type initScriptResult struct {
	PipeCfg, NvPll, MPll uint32
	err                  error
}

// walkInitScript walks the opcode stream starting at off until it reaches
// 'q' or an unrecognized opcode, snapshotting 'z' writes to 0x1540, 0x4000
// and 0x4020 along the way.
func walkInitScript(r *reader, off uint32) initScriptResult {
	var res initScriptResult

	for {
		id, err := r.u8(off)
		if err != nil {
			res.err = err
			return res
		}
		if id == opQuit {
			return res
		}

		if id == opInitZMReg {
			reg, err := r.u32(off + 1)
			if err != nil {
				res.err = err
				return res
			}
			val, err := r.u32(off + 5)
			if err != nil {
				res.err = err
				return res
			}
			switch reg {
			case regPipeCfg:
				res.PipeCfg = val
			case regNVPll:
				res.NvPll = val
			case regMPll:
				res.MPll = val
			}
		}

		n, ok, err := opcodeLen(r, off)
		if err != nil {
			res.err = err
			return res
		}
		if !ok {
			res.err = &UnknownOpcodeError{Opcode: id, Offset: off}
			return res
		}

		off += n
	}
}

// walkInitTables follows up to numPointers consecutive u16 pointers
// starting at initOffset, walking each non-zero pointer's init script and
// merging the register snapshots. numPointers comes from the BIT 'I'
// entry's len field (§4.5).
func walkInitTables(r *reader, initOffset uint32, numPointers int) (initScriptResult, []error) {
	var merged initScriptResult
	var diags []error

	for i := 0; i < numPointers; i++ {
		ptr, err := r.u16(initOffset + uint32(2*i))
		if err != nil {
			diags = append(diags, err)
			break
		}
		if ptr == 0 {
			continue
		}
		res := walkInitScript(r, uint32(ptr))
		if res.PipeCfg != 0 {
			merged.PipeCfg = res.PipeCfg
		}
		if res.NvPll != 0 {
			merged.NvPll = res.NvPll
		}
		if res.MPll != 0 {
			merged.MPll = res.MPll
		}
		if res.err != nil {
			diags = append(diags, res.err)
		}
	}

	return merged, diags
}
