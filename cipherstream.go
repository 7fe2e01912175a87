// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package symcrypt

import (
	"io"
	"runtime"

	"github.com/sixafter/symcrypt/x/crypto/block"
	"github.com/sixafter/symcrypt/x/crypto/mode"
	"github.com/sixafter/symcrypt/x/crypto/padding"
	"github.com/sixafter/symcrypt/x/crypto/stream"
)

const (
	// ParallelMaximumSize bounds how large a single parallel chunk may be.
	ParallelMaximumSize = 100 * 1024 * 1024
)

// ProgressFunc receives a monotonic-within-a-call percentage in [0, 100]
// as a Write progresses. It is advisory and non-cancelling.
type ProgressFunc func(percent int)

// CipherStream drives a mode+padding pair, or a stream cipher, across an
// input of arbitrary length. It is the seam through
// which all of this module's block- and stream-cipher primitives are
// actually used end to end.
type CipherStream struct {
	blockMode mode.Interface
	padder    padding.Interface
	streamCi  stream.Interface

	direction block.Direction
	blockSize int

	parallelBlockSize int
	onProgress        ProgressFunc

	// tail holds bytes carried over between successive reads inside one
	// WriteStream call that do not align to blockSize; the final flush of
	// that call consumes and clears it.
	tail []byte

	init bool
}

// NewBlockCipherStream constructs a CipherStream driving a mode+padding
// pair over a block cipher.
func NewBlockCipherStream(m mode.Interface, p padding.Interface) *CipherStream {
	cs := &CipherStream{blockMode: m, padder: p, blockSize: m.BlockSize()}
	cs.parallelBlockSize = defaultParallelBlockSize(cs.blockSize)
	return cs
}

// NewStreamCipherStream constructs a CipherStream driving a raw stream
// cipher (no padding; stream ciphers always align byte-for-byte).
func NewStreamCipherStream(s stream.Interface) *CipherStream {
	cs := &CipherStream{streamCi: s, blockSize: s.BlockSize()}
	cs.parallelBlockSize = defaultParallelBlockSize(cs.blockSize)
	return cs
}

func defaultParallelBlockSize(blockSize int) int {
	n := ParallelMinimumSize(blockSize)
	if n > ParallelMaximumSize {
		n = ParallelMaximumSize
	}
	return n
}

// ParallelMinimumSize is processor_count x block_size.
func ParallelMinimumSize(blockSize int) int {
	return runtime.GOMAXPROCS(0) * blockSize
}

// SetParallelBlockSize sets the caller-settable parallel chunk size. It
// is clamped to [ParallelMinimumSize, ParallelMaximumSize] and rounded
// down to a multiple of the underlying block size.
func (cs *CipherStream) SetParallelBlockSize(n int) {
	min := ParallelMinimumSize(cs.blockSize)
	if n < min {
		n = min
	}
	if n > ParallelMaximumSize {
		n = ParallelMaximumSize
	}
	n -= n % cs.blockSize
	if n == 0 {
		n = cs.blockSize
	}
	cs.parallelBlockSize = n
}

func (cs *CipherStream) WithProgressFunc(f ProgressFunc) *CipherStream {
	cs.onProgress = f
	return cs
}

// IsParallel reports whether this stream will request parallel execution
// from the underlying mode/stream cipher for the current direction. For
// strictly sequential modes (CBC-encrypt, CFB-encrypt, OFB) this is
// always false regardless of what SetParallel requested.
func (cs *CipherStream) IsParallel() bool {
	if cs.blockMode != nil {
		return cs.blockMode.IsParallelizable() && cs.blockMode.IsParallel()
	}
	if cs.streamCi != nil {
		return cs.streamCi.IsParallel()
	}
	return false
}

// SetParallel requests parallel execution. Honored only where the
// underlying mode is parallelizable for the current direction; ignored
// otherwise.
func (cs *CipherStream) SetParallel(p bool) {
	if cs.blockMode != nil {
		if cs.blockMode.IsParallelizable() {
			cs.blockMode.SetParallel(p)
		}
		return
	}
	if cs.streamCi != nil {
		cs.streamCi.SetParallel(p)
	}
}

// Initialize forwards to the inner cipher/mode and resets internal
// counters.
func (cs *CipherStream) Initialize(direction block.Direction, kp *KeyParams) error {
	cs.direction = direction
	cs.tail = nil

	if cs.blockMode != nil {
		if err := cs.blockMode.Initialize(direction, kp.Key(), kp.IV(), kp.Info()); err != nil {
			return err
		}
	} else {
		if err := cs.streamCi.Initialize(kp.Key(), kp.IV()); err != nil {
			return err
		}
	}
	cs.init = true
	return nil
}

func (cs *CipherStream) report(done, total int) {
	if cs.onProgress == nil || total == 0 {
		return
	}
	pct := done * 100 / total
	if pct > 100 {
		pct = 100
	}
	cs.onProgress(pct)
}

// Write processes all of input into output (byte-array surface). On
// encrypt with PKCS7, ISO7816-4 or X9.23 padding, it pads the final
// partial block, or appends one full pad block when input is
// block-aligned; with TBC or ZeroPad, block-aligned input gets no pad
// block. On decrypt, it strips the final block's padding and truncates
// the returned slice accordingly; with TBC or ZeroPad a final block that
// reads as unpadded is returned whole. On any error, bytes already
// written to output are best-effort zeroed.
func (cs *CipherStream) Write(input []byte) (output []byte, err error) {
	if !cs.init {
		return nil, ErrNotInitialized
	}

	if cs.streamCi != nil {
		out := make([]byte, len(input))
		cs.streamCi.Transform(input, out)
		cs.report(len(input), len(input))
		return out, nil
	}

	defer func() {
		if err != nil && output != nil {
			zeroBytes(output)
			output = nil
		}
	}()

	if cs.direction == block.Encrypt {
		return cs.writeEncrypt(input)
	}
	return cs.writeDecrypt(input)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func (cs *CipherStream) writeEncrypt(input []byte) ([]byte, error) {
	bs := cs.blockSize
	total := len(input)

	if cs.padder == nil || cs.padder.Name() == "None" {
		if total%bs != 0 {
			return nil, ErrInvalidParameter
		}
		out := make([]byte, total)
		if err := cs.blockMode.TransformBlocks(input, out); err != nil {
			return nil, err
		}
		cs.report(total, total)
		return out, nil
	}

	fullBlocks := total / bs
	tailLen := total - fullBlocks*bs

	if tailLen == 0 && !padderForcesExtraBlock(cs.padder) {
		// TBC/ZeroPad carry no explicit length marker, so a synthetic pad
		// block appended to already block-aligned input would be
		// indistinguishable from real data on decrypt. Leave it as-is.
		out := make([]byte, total)
		if err := cs.blockMode.TransformBlocks(input, out); err != nil {
			return nil, err
		}
		cs.report(total, total)
		return out, nil
	}

	// PKCS7/ISO7816/X9.23 always append exactly one pad block: the last
	// chunk fed to TransformBlocks is a full block containing the final
	// (possibly zero) data bytes plus padding.
	outLen := (fullBlocks + 1) * bs
	out := make([]byte, outLen)

	padded := make([]byte, bs)
	copy(padded, input[fullBlocks*bs:])
	if err := cs.padder.AddPadding(padded, tailLen); err != nil {
		return nil, err
	}

	plain := make([]byte, outLen)
	copy(plain, input[:fullBlocks*bs])
	copy(plain[fullBlocks*bs:], padded)

	if err := cs.blockMode.TransformBlocks(plain, out); err != nil {
		return nil, err
	}
	cs.report(total, total)
	return out, nil
}

// padderForcesExtraBlock reports whether p carries an explicit length or
// marker byte, and so can tell a synthetic full pad block apart from real
// data on decrypt even when the plaintext was already block-aligned.
func padderForcesExtraBlock(p padding.Interface) bool {
	switch p.Name() {
	case "PKCS7", "ISO7816-4", "X9.23":
		return true
	default:
		return false
	}
}

func (cs *CipherStream) writeDecrypt(input []byte) ([]byte, error) {
	bs := cs.blockSize
	if len(input) == 0 || len(input)%bs != 0 {
		return nil, ErrInvalidParameter
	}

	out := make([]byte, len(input))
	if err := cs.blockMode.TransformBlocks(input, out); err != nil {
		return nil, err
	}
	cs.report(len(input), len(input))

	if cs.padder == nil || cs.padder.Name() == "None" {
		return out, nil
	}

	// Strip the last block's padding via a one-block lookahead: the bulk
	// transform above already produced the plaintext for every block
	// including the last, so the strip path only needs to inspect it.
	last := out[len(out)-bs:]
	n := cs.padder.GetPaddingLength(last)
	if n == 0 {
		if !padderForcesExtraBlock(cs.padder) {
			// TBC/ZeroPad: block-aligned plaintext was encrypted without a
			// pad block, so there is nothing to strip.
			return out, nil
		}
		return nil, ErrPaddingInvalid
	}
	return out[:len(out)-n], nil
}

// WriteStream processes all remaining bytes from in, writing to out,
// buffering at most ParallelBlockSize bytes at a time and keeping any
// unaligned tail for the next read or the final flush.
func (cs *CipherStream) WriteStream(in io.Reader, out io.Writer) error {
	if !cs.init {
		return ErrNotInitialized
	}

	bs := cs.blockSize
	reserve := 0
	if cs.blockMode != nil && cs.direction == block.Decrypt && cs.padder != nil && cs.padder.Name() != "None" {
		// The final ciphertext block must go through the strip path (the
		// one-block lookahead in writeDecrypt), not the bulk path, so its
		// padding can be removed. Hold it back in tail instead of
		// transforming it eagerly, however the input happens to be chunked.
		reserve = bs
	}

	chunk := make([]byte, cs.parallelBlockSize)

	for {
		n, rerr := io.ReadFull(in, chunk)
		if n > 0 {
			buf := append(cs.tail, chunk[:n]...)
			aligned := (len(buf) / bs) * bs
			transformNow := aligned - reserve
			if transformNow < 0 {
				transformNow = 0
			}
			if transformNow > 0 {
				result, err := cs.transformAligned(buf[:transformNow])
				if err != nil {
					return err
				}
				if _, werr := out.Write(result); werr != nil {
					return werr
				}
			}
			cs.tail = append([]byte(nil), buf[transformNow:]...)
		}
		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}

	return cs.flushStream(out)
}

// transformAligned runs a block-aligned chunk straight through the mode
// (no padding logic — padding only ever applies to the final flush).
func (cs *CipherStream) transformAligned(in []byte) ([]byte, error) {
	if cs.streamCi != nil {
		dst := make([]byte, len(in))
		cs.streamCi.Transform(in, dst)
		return dst, nil
	}
	dst := make([]byte, len(in))
	if err := cs.blockMode.TransformBlocks(in, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

func (cs *CipherStream) flushStream(out io.Writer) error {
	defer func() { cs.tail = nil }()

	if cs.streamCi != nil {
		if len(cs.tail) == 0 {
			return nil
		}
		dst := make([]byte, len(cs.tail))
		cs.streamCi.Transform(cs.tail, dst)
		_, err := out.Write(dst)
		return err
	}

	// An empty tail needs a final Write only when it yields output: a pad
	// block on encrypt (PKCS7/ISO7816/X9.23), or the held-back last block
	// on padded decrypt, which is never empty unless the input was.
	padded := cs.padder != nil && cs.padder.Name() != "None"
	if len(cs.tail) == 0 && !(padded && (cs.direction == block.Decrypt || padderForcesExtraBlock(cs.padder))) {
		return nil
	}

	result, err := cs.Write(cs.tail)
	if err != nil {
		return err
	}
	_, werr := out.Write(result)
	return werr
}
