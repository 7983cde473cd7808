// Package lzstring reads and writes the base64 flavour of the LZ-based string
// compression that older clients used to build note ids.
//
// Strings are processed as UTF-16 code units so output matches the
// browser implementation bit for bit.
package lzstring

import (
	"unicode/utf16"

	"github.com/pkg/errors"
)

const keyStrBase64 = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="

// ErrMalformed is wrapped by every decompression failure caused by bad input
var ErrMalformed = errors.New("lzstring: malformed input")

var base64Index = func() [256]int {
	var idx [256]int
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(keyStrBase64); i++ {
		idx[keyStrBase64[i]] = i
	}
	return idx
}()

// CompressToBase64 compresses s and encodes the bit stream with the base64 alphabet
func CompressToBase64(s string) string {
	res := compress(utf16.Encode([]rune(s)), 6, func(v int) byte { return keyStrBase64[v] })
	switch len(res) % 4 {
	case 1:
		return res + "==="
	case 2:
		return res + "=="
	case 3:
		return res + "="
	}
	return res
}

// DecompressFromBase64 reverses CompressToBase64
func DecompressFromBase64(s string) (string, error) {
	if s == "" {
		return "", errors.Wrap(ErrMalformed, "empty input")
	}
	next := func(i int) (int, error) {
		if i >= len(s) {
			return 0, nil
		}
		v := base64Index[s[i]]
		if v < 0 {
			return 0, errors.Wrapf(ErrMalformed, "invalid character %q at %d", s[i], i)
		}
		return v, nil
	}
	units, err := decompress(len(s), 32, next)
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}

type bitWriter struct {
	bitsPerChar int
	charFor     func(int) byte
	val         int
	position    int
	out         []byte
}

// write emits the low n bits of value, least significant first
func (w *bitWriter) write(value, n int) {
	for i := 0; i < n; i++ {
		w.val = (w.val << 1) | (value & 1)
		if w.position == w.bitsPerChar-1 {
			w.position = 0
			w.out = append(w.out, w.charFor(w.val))
			w.val = 0
		} else {
			w.position++
		}
		value >>= 1
	}
}

func (w *bitWriter) flush() {
	for {
		w.val <<= 1
		if w.position == w.bitsPerChar-1 {
			w.out = append(w.out, w.charFor(w.val))
			return
		}
		w.position++
	}
}

func key(units []uint16) string {
	b := make([]byte, 0, 2*len(units))
	for _, u := range units {
		b = append(b, byte(u>>8), byte(u))
	}
	return string(b)
}

func compress(input []uint16, bitsPerChar int, charFor func(int) byte) string {
	var (
		dictionary = map[string]int{}
		toCreate   = map[string]bool{}
		w          []uint16
		enlargeIn  = 2
		dictSize   = 3
		numBits    = 2
		out        = &bitWriter{bitsPerChar: bitsPerChar, charFor: charFor}
	)

	shrink := func() {
		enlargeIn--
		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}
	emit := func() {
		k := key(w)
		if toCreate[k] {
			if w[0] < 256 {
				out.write(0, numBits)
				out.write(int(w[0]), 8)
			} else {
				out.write(1, numBits)
				out.write(int(w[0]), 16)
			}
			shrink()
			delete(toCreate, k)
		} else {
			out.write(dictionary[k], numBits)
		}
		shrink()
	}

	for _, c := range input {
		ck := key([]uint16{c})
		if _, ok := dictionary[ck]; !ok {
			dictionary[ck] = dictSize
			dictSize++
			toCreate[ck] = true
		}

		wc := append(append(make([]uint16, 0, len(w)+1), w...), c)
		if _, ok := dictionary[key(wc)]; ok {
			w = wc
			continue
		}
		emit()
		dictionary[key(wc)] = dictSize
		dictSize++
		w = []uint16{c}
	}

	if len(w) > 0 {
		emit()
	}

	// end of stream marker
	out.write(2, numBits)
	out.flush()
	return string(out.out)
}

type bitReader struct {
	reset    int
	next     func(int) (int, error)
	val      int
	position int
	index    int
}

func (r *bitReader) read(n int) (int, error) {
	bits := 0
	for power := 1; power != 1<<n; power <<= 1 {
		resb := r.val & r.position
		r.position >>= 1
		if r.position == 0 {
			r.position = r.reset
			v, err := r.next(r.index)
			if err != nil {
				return 0, err
			}
			r.val = v
			r.index++
		}
		if resb > 0 {
			bits |= power
		}
	}
	return bits, nil
}

func decompress(length, reset int, next func(int) (int, error)) ([]uint16, error) {
	first, err := next(0)
	if err != nil {
		return nil, err
	}
	r := &bitReader{reset: reset, next: next, val: first, position: reset, index: 1}

	// codes 0..2 are reserved for literals and the end marker
	dictionary := [][]uint16{nil, nil, nil}
	enlargeIn, numBits := 4, 3

	literal := func(kind int) ([]uint16, error) {
		width := 8
		if kind == 1 {
			width = 16
		}
		c, err := r.read(width)
		if err != nil {
			return nil, err
		}
		return []uint16{uint16(c)}, nil
	}

	kind, err := r.read(2)
	if err != nil {
		return nil, err
	}
	var w []uint16
	switch kind {
	case 0, 1:
		if w, err = literal(kind); err != nil {
			return nil, err
		}
	case 2:
		return []uint16{}, nil
	default:
		return nil, errors.Wrap(ErrMalformed, "invalid leading code")
	}
	dictionary = append(dictionary, w)
	result := append([]uint16{}, w...)

	for {
		if r.index > length {
			return nil, errors.Wrap(ErrMalformed, "unexpected end of input")
		}

		c, err := r.read(numBits)
		if err != nil {
			return nil, err
		}
		switch c {
		case 0, 1:
			lit, err := literal(c)
			if err != nil {
				return nil, err
			}
			dictionary = append(dictionary, lit)
			c = len(dictionary) - 1
			enlargeIn--
		case 2:
			return result, nil
		}

		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}

		var entry []uint16
		switch {
		case c < len(dictionary) && dictionary[c] != nil:
			entry = dictionary[c]
		case c == len(dictionary):
			entry = append(append(make([]uint16, 0, len(w)+1), w...), w[0])
		default:
			return nil, errors.Wrapf(ErrMalformed, "dangling reference %d", c)
		}
		result = append(result, entry...)

		dictionary = append(dictionary, append(append(make([]uint16, 0, len(w)+1), w...), entry[0]))
		enlargeIn--
		w = entry

		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}
}
