package h5file

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Object header message types.
const (
	msgDatatype     = 0x0003
	msgContinuation = 0x0010
)

const (
	datatypeFixed = 0

	// Bit 3 of a fixed-point class bit field marks two's complement values.
	fixedSigned = 0x08
)

// datatypeField is the leading part of a dataset's datatype message.
type datatypeField struct {
	class uint8
	bits  uint32
	size  uint32

	// offset is the file offset of the message data.
	offset int64
}

func (t datatypeField) unsignedFixed() bool {
	return t.class == datatypeFixed && t.bits&fixedSigned == 0
}

// headerLayout carries the superblock fields needed to walk object headers.
type headerLayout struct {
	order      binary.ByteOrder
	offsetSize int
	lengthSize int
}

// block is a run of header messages waiting to be scanned.
type block struct {
	start, end int64
	v2         bool
	crtOrder   bool
}

const maxHeaderBlocks = 64

// readDatatype finds the datatype message in the object header at addr.
// hdf5.Dataset.Info reports the class and size but not the sign of
// fixed-point types, so the header is walked directly.
func readDatatype(r io.ReaderAt, lay headerLayout, addr uint64) (datatypeField, error) {
	prefix := make([]byte, 16)
	//nolint:gosec // G115: header addresses fit in int64
	if _, err := r.ReadAt(prefix, int64(addr)); err != nil && !errors.Is(err, io.EOF) {
		return datatypeField{}, fmt.Errorf("read object header at %#x: %w", addr, err)
	}

	first, err := firstBlock(r, lay, int64(addr), prefix) //nolint:gosec // G115
	if err != nil {
		return datatypeField{}, err
	}

	queue := []block{first}
	for n := 0; len(queue) > 0; n++ {
		if n == maxHeaderBlocks {
			return datatypeField{}, fmt.Errorf("object header at %#x: too many continuation blocks", addr)
		}
		blk := queue[0]
		queue = queue[1:]

		dt, next, found, err := scanBlock(r, lay, blk)
		if err != nil {
			return datatypeField{}, fmt.Errorf("object header at %#x: %w", addr, err)
		}
		if found {
			return dt, nil
		}
		queue = append(queue, next...)
	}
	return datatypeField{}, fmt.Errorf("object header at %#x has no datatype message", addr)
}

func firstBlock(r io.ReaderAt, lay headerLayout, addr int64, prefix []byte) (block, error) {
	switch {
	case bytes.Equal(prefix[:4], []byte("OHDR")):
		flags := prefix[5]
		current := addr + 6
		if flags&0x20 != 0 {
			current += 16
		}
		if flags&0x10 != 0 {
			current += 4
		}
		width := 1 << (flags & 0x03)
		buf := make([]byte, 8)
		if _, err := r.ReadAt(buf[:width], current); err != nil {
			return block{}, fmt.Errorf("read chunk size at %#x: %w", current, err)
		}
		size := littleEndian(buf[:width])
		current += int64(width)
		//nolint:gosec // G115: chunk sizes fit in int64
		return block{start: current, end: current + int64(size), v2: true, crtOrder: flags&0x04 != 0}, nil

	case prefix[0] == 1:
		size := lay.order.Uint32(prefix[8:12])
		return block{start: addr + 16, end: addr + 16 + int64(size)}, nil

	default:
		return block{}, fmt.Errorf("unsupported object header at %#x", addr)
	}
}

// scanBlock walks one message run. It returns the datatype message when the
// run holds it, otherwise the continuation blocks it points to.
func scanBlock(r io.ReaderAt, lay headerLayout, blk block) (datatypeField, []block, bool, error) {
	if blk.end < blk.start || blk.end-blk.start > 1<<24 {
		return datatypeField{}, nil, false, fmt.Errorf("implausible header block [%#x, %#x)", blk.start, blk.end)
	}
	data := make([]byte, blk.end-blk.start)
	if _, err := r.ReadAt(data, blk.start); err != nil && !errors.Is(err, io.EOF) {
		return datatypeField{}, nil, false, fmt.Errorf("read header block at %#x: %w", blk.start, err)
	}

	pos := 0
	if blk.v2 && bytes.HasPrefix(data, []byte("OCHK")) && len(data) >= 8 {
		// Signature and trailing checksum.
		pos = 4
		data = data[:len(data)-4]
	}

	var next []block
	for {
		var typ, size, hdr int
		if blk.v2 {
			hdr = 4
			if blk.crtOrder {
				hdr += 2
			}
			if pos+hdr > len(data) {
				break
			}
			typ = int(data[pos])
			size = int(binary.LittleEndian.Uint16(data[pos+1 : pos+3]))
		} else {
			hdr = 8
			if pos+hdr > len(data) {
				break
			}
			typ = int(lay.order.Uint16(data[pos : pos+2]))
			size = int(lay.order.Uint16(data[pos+2 : pos+4]))
		}

		body := pos + hdr
		if body+size > len(data) {
			return datatypeField{}, nil, false, fmt.Errorf("message at %#x overruns its block", blk.start+int64(pos))
		}
		msg := data[body : body+size]

		switch typ {
		case msgDatatype:
			if len(msg) < 8 {
				return datatypeField{}, nil, false, fmt.Errorf("short datatype message at %#x", blk.start+int64(body))
			}
			cv := binary.LittleEndian.Uint32(msg[0:4])
			return datatypeField{
				//nolint:gosec // G115: masked to four bits
				class:  uint8(cv & 0x0F),
				bits:   (cv >> 8) & 0xFFFFFF,
				size:   binary.LittleEndian.Uint32(msg[4:8]),
				offset: blk.start + int64(body),
			}, nil, true, nil

		case msgContinuation:
			if len(msg) < lay.offsetSize+lay.lengthSize {
				return datatypeField{}, nil, false, fmt.Errorf("short continuation message at %#x", blk.start+int64(body))
			}
			at := readUint(lay.order, msg[:lay.offsetSize])
			n := readUint(lay.order, msg[lay.offsetSize:lay.offsetSize+lay.lengthSize])
			//nolint:gosec // G115: header addresses fit in int64
			next = append(next, block{start: int64(at), end: int64(at + n), v2: blk.v2, crtOrder: blk.crtOrder})
		}

		pos = body + size
	}
	return datatypeField{}, next, false, nil
}

func littleEndian(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func readUint(order binary.ByteOrder, b []byte) uint64 {
	switch len(b) {
	case 2:
		return uint64(order.Uint16(b))
	case 4:
		return uint64(order.Uint32(b))
	case 8:
		return order.Uint64(b)
	default:
		return 0
	}
}
