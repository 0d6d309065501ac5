package soia

import (
	"fmt"
	"strings"
)

// DebugString pretty-prints the wire structure of b (a complete ToBytes
// output, magic included) for debugging, without needing a schema. A
// single recursive walk over the whole buffer; like the rest of the
// package it never streams.
func DebugString(b []byte) string {
	body, err := stripMagic(b)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	in := newInbuf(body, true)
	var sb strings.Builder
	if err := dumpWireValue(&sb, in, 0); err != nil {
		sb.WriteString(fmt.Sprintf(" <%v>", err))
	}
	if in.remaining() > 0 {
		sb.WriteString(fmt.Sprintf("\n<%d trailing byte(s)>", in.remaining()))
	}
	return sb.String()
}

func dumpWireValue(sb *strings.Builder, b *inbuf, depth int) error {
	w, err := b.peekByte()
	if err != nil {
		return err
	}
	indent := strings.Repeat("  ", depth)
	switch {
	case isNumericWire(w):
		hdr, err := readWireHeader(b)
		if err != nil {
			return err
		}
		switch {
		case hdr.wire == wireF32 || hdr.wire == wireF64:
			fmt.Fprintf(sb, "%sfloat(%v)", indent, hdr.asFloat64())
		case hdr.wire == wireTimestamp:
			fmt.Fprintf(sb, "%stimestamp(%dms)", indent, hdr.ts)
		case hdr.isNegBranch():
			fmt.Fprintf(sb, "%sint(%d)", indent, hdr.neg)
		default:
			fmt.Fprintf(sb, "%suint(%d)", indent, hdr.u)
		}
		return nil
	case w == wireEmptyStr:
		b.pos++
		fmt.Fprintf(sb, "%sstring(\"\")", indent)
		return nil
	case w == wireStr:
		b.pos++
		n, err := readWireUintBody(b)
		if err != nil {
			return err
		}
		s, err := b.readN(int(n))
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%sstring(%q)", indent, string(s))
		return nil
	case w == wireEmptyBytes:
		b.pos++
		fmt.Fprintf(sb, "%sbytes(0)", indent)
		return nil
	case w == wireBytes:
		b.pos++
		n, err := readWireUintBody(b)
		if err != nil {
			return err
		}
		if err := b.skip(int(n)); err != nil {
			return err
		}
		fmt.Fprintf(sb, "%sbytes(%d)", indent, n)
		return nil
	case w == wireNull:
		b.pos++
		fmt.Fprintf(sb, "%snull", indent)
		return nil
	case w == wireLen0, w == wireLen1, w == wireLen2, w == wireLenN:
		n, err := readWireLen(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%slist(%d)", indent, n)
		for i := 0; i < n; i++ {
			sb.WriteString("\n")
			if err := dumpWireValue(sb, b, depth+1); err != nil {
				return err
			}
		}
		return nil
	case w == wireEnum248:
		b.pos++
		num, err := readWireUintBody(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%senum_value(%d)\n", indent, num)
		return dumpWireValue(sb, b, depth+1)
	case w >= wireEnum251 && w <= wireEnum254:
		num := int(w-wireEnum251) + 1
		b.pos++
		fmt.Fprintf(sb, "%senum_value(%d)\n", indent, num)
		return dumpWireValue(sb, b, depth+1)
	default:
		return decodeErrorf("soia: cannot dump unknown wire byte %d", w)
	}
}
