package floppy

// write62 is the standard DOS 3.3 / ProDOS "6-and-2" translate table: each
// of the 64 possible 6-bit values maps to a disk byte with the high bit
// set and at most one pair of adjacent zero bits, so the Disk II
// self-clocking read circuitry can recover timing from the bitstream
// alone. This is general Apple II disk-format knowledge (not present
// verbatim in the retrieval pack), parallel to hardware/cpu's CMOS
// opcode additions.
var write62 = [64]byte{
	0x96, 0x97, 0x9A, 0x9B, 0x9D, 0x9E, 0x9F, 0xA6,
	0xA7, 0xAB, 0xAC, 0xAD, 0xAE, 0xAF, 0xB2, 0xB3,
	0xB4, 0xB5, 0xB6, 0xB7, 0xB9, 0xBA, 0xBB, 0xBC,
	0xBD, 0xBE, 0xBF, 0xCB, 0xCD, 0xCE, 0xCF, 0xD3,
	0xD6, 0xD7, 0xD9, 0xDA, 0xDB, 0xDC, 0xDD, 0xDE,
	0xDF, 0xE5, 0xE6, 0xE7, 0xE9, 0xEA, 0xEB, 0xEC,
	0xED, 0xEE, 0xEF, 0xF2, 0xF3, 0xF4, 0xF5, 0xF6,
	0xF7, 0xF9, 0xFA, 0xFB, 0xFC, 0xFD, 0xFE, 0xFF,
}

// read62 is the inverse of write62, built once at init: disk byte -> its
// original 6-bit value. Bytes that never appear in write62 (sync bytes,
// prologue/epilogue markers) map to 0xFF and must never be looked up by a
// well-formed decoder.
var read62 [256]byte

func init() {
	for i := range read62 {
		read62[i] = 0xFF
	}
	for v, b := range write62 {
		read62[b] = byte(v)
	}
}

// encode62 converts 256 bytes of sector data into the 342 "6-bit" disk
// bytes used between the D5 AA AD prologue and the checksum, plus the
// trailing checksum byte itself (spec §4.H). The first 86 bytes carry the
// low 2 bits of three interleaved groups of the sector; the remaining 256
// carry each byte's high 6 bits. Every value is XORed with the previous
// one before translation, so the checksum chain can be unwound by the
// decoder without needing a separate pass.
func encode62(data []byte, out *[342]byte) (checksum byte) {
	var buf [342]byte
	bits := func(b byte) byte {
		v := b & 0x03
		return (v>>1)&1 | (v&1)<<1
	}
	for i := 0; i < 86; i++ {
		b0 := data[i]
		b1 := data[i+86]
		var b2 byte
		if i+172 < 256 {
			b2 = data[i+172]
		}
		buf[i] = bits(b2)<<4 | bits(b1)<<2 | bits(b0)
	}
	for i := 0; i < 256; i++ {
		buf[86+i] = data[i] >> 2
	}

	var last byte
	for i, v := range buf {
		out[i] = write62[v^last]
		last = v
	}
	return write62[last]
}

// decode62 is the inverse of encode62: given the 342 translated disk
// bytes plus the trailing checksum byte, it recovers the original 256
// bytes of sector data. It reports false if the checksum does not close
// the XOR chain or if any byte is not a valid 6-and-2 disk byte.
func decode62(nibbles *[342]byte, checksumByte byte, data []byte) bool {
	var buf [342]byte
	var last byte
	for i, nb := range nibbles {
		v := read62[nb]
		if v == 0xFF {
			return false
		}
		buf[i] = v ^ last
		last = buf[i]
	}
	finalCheck := read62[checksumByte]
	if finalCheck == 0xFF || finalCheck != last {
		return false
	}

	for i := 0; i < 256; i++ {
		data[i] = buf[86+i] << 2
	}
	unbits := func(v byte) byte {
		return (v&1)<<1 | (v>>1)&1
	}
	for i := 0; i < 86; i++ {
		b := buf[i]
		data[i] |= unbits(b&0x03) & 0x03
		data[i+86] |= unbits((b>>2)&0x03) & 0x03
		if i+172 < 256 {
			data[i+172] |= unbits((b>>4)&0x03) & 0x03
		}
	}
	return true
}

// encode44 is the "odd-even" 4-and-4 encoding used for address-field
// bytes (volume, track, sector, checksum): every guest byte becomes two
// disk bytes of the form 1x1x1x1x, so no disk byte can have two
// adjacent zero bits.
func encode44(v byte) (odd, even byte) {
	return (v >> 1) | 0xAA, v | 0xAA
}

// decode44 is the inverse of encode44.
func decode44(odd, even byte) byte {
	return ((odd << 1) | 0x01) & even
}
