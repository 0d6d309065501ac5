package soia

// skipWireValue consumes exactly one complete wire element starting at the
// cursor, without knowing its schema. This is the only way to
// discard a value of unknown type: struct decoding uses it for removed or
// out-of-schema field slots, and enum decoding uses it for unrecognized
// variant numbers. It handles every wire value a legal encoder can emit,
// including nested containers and enum value-variants.
func skipWireValue(b *inbuf) error {
	w, err := b.peekByte()
	if err != nil {
		return err
	}
	switch {
	case w <= wireMaxSmallInt:
		b.pos++
		return nil
	case w == wireU16 || w == wireNegI16:
		return b.skip(3)
	case w == wireU32 || w == wireI32 || w == wireF32:
		return b.skip(5)
	case w == wireU64 || w == wireI64 || w == wireTimestamp || w == wireF64:
		return b.skip(9)
	case w == wireNegI8:
		return b.skip(2)
	case w == wireEmptyStr, w == wireEmptyBytes, w == wireLen0, w == wireNull:
		b.pos++
		return nil
	case w == wireStr:
		b.pos++
		n, err := readWireUintBody(b)
		if err != nil {
			return err
		}
		return b.skip(int(n))
	case w == wireBytes:
		b.pos++
		n, err := readWireUintBody(b)
		if err != nil {
			return err
		}
		return b.skip(int(n))
	case w == wireLen1:
		b.pos++
		return skipWireValue(b)
	case w == wireLen2:
		b.pos++
		if err := skipWireValue(b); err != nil {
			return err
		}
		return skipWireValue(b)
	case w == wireLenN:
		b.pos++
		n, err := readWireUintBody(b)
		if err != nil {
			return err
		}
		for i := uint64(0); i < n; i++ {
			if err := skipWireValue(b); err != nil {
				return err
			}
		}
		return nil
	case w >= wireEnum251 && w <= wireEnum254:
		b.pos++
		return skipWireValue(b)
	case w == wireEnum248:
		b.pos++
		if _, err := readWireUintBody(b); err != nil {
			return err
		}
		return skipWireValue(b)
	default:
		return decodeErrorf("soia: cannot skip unknown wire byte %d", w)
	}
}
