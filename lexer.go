package argon2kdf

import (
	"encoding/base64"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Encoded records use unpadded standard base64. Strict decoding rejects
// non-zero trailing bits so that every accepted string re-encodes to itself.
var b64 = base64.RawStdEncoding.Strict()

const fieldCount = 5

// String encodes the record as
// $<algorithm>$v=<version>$m=<m>,t=<t>,p=<p>$<salt>$<key>.
func (r *Hash) String() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	b.Grow(32 + b64.EncodedLen(len(r.salt)) + b64.EncodedLen(len(r.key)))
	b.WriteString("$")
	b.WriteString(r.algorithm.String())
	b.WriteString("$v=")
	b.WriteString(strconv.FormatUint(uint64(r.version), 10))
	b.WriteString("$m=")
	b.WriteString(strconv.FormatUint(uint64(r.params.MemoryCost), 10))
	b.WriteString(",t=")
	b.WriteString(strconv.FormatUint(uint64(r.params.TimeCost), 10))
	b.WriteString(",p=")
	b.WriteString(strconv.FormatUint(uint64(r.params.Parallelism), 10))
	b.WriteString("$")
	b.WriteString(b64.EncodeToString(r.salt))
	b.WriteString("$")
	b.WriteString(b64.EncodeToString(r.key))
	return b.String()
}

// MarshalText implements encoding.TextMarshaler with the String encoding.
func (r *Hash) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with ParseHash.
func (r *Hash) UnmarshalText(text []byte) error {
	h, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*r = *h
	return nil
}

// DecodeOption adjusts ParseHash.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	saltLength int
	keyLength  int
	deriver    Deriver
}

// DecodeWithLengths rejects records whose salt or key length differ from the
// given values. A zero length is not checked.
func DecodeWithLengths(saltLength, keyLength int) DecodeOption {
	return func(o *decodeOptions) {
		o.saltLength = saltLength
		o.keyLength = keyLength
	}
}

// DecodeWithDeriver sets the Deriver the decoded record verifies through.
func DecodeWithDeriver(d Deriver) DecodeOption {
	return func(o *decodeOptions) {
		o.deriver = d
	}
}

// ParseHash decodes a string produced by (*Hash).String. Every field is
// checked before a record is built; failures are *FormatError values that
// match ErrInvalidFormat. ParseHash never panics.
func ParseHash(s string, opts ...DecodeOption) (*Hash, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	lx := lexer{input: s}
	fields, err := lx.fields()
	if err != nil {
		return nil, err
	}

	algorithm, err := ParseAlgorithm(fields[0])
	if err != nil {
		return nil, &FormatError{Field: "algorithm", Err: err}
	}

	version, err := parseVersion(fields[1])
	if err != nil {
		return nil, err
	}

	params, err := parseParams(fields[2])
	if err != nil {
		return nil, err
	}

	salt, err := decodeBase64("salt", fields[3])
	if err != nil {
		return nil, err
	}
	if err := checkLength("salt", len(salt), MinSaltLength, o.saltLength); err != nil {
		return nil, err
	}

	key, err := decodeBase64("hash", fields[4])
	if err != nil {
		return nil, err
	}
	if err := checkLength("hash", len(key), MinHashLength, o.keyLength); err != nil {
		return nil, err
	}

	return &Hash{
		algorithm: algorithm,
		version:   version,
		params:    params,
		salt:      salt,
		key:       key,
		deriver:   o.deriver,
	}, nil
}

// lexer splits an encoded record into its '$'-separated fields.
type lexer struct {
	input string
	pos   int
}

// next returns the text up to the next '$' or the end of input.
func (l *lexer) next() string {
	start := l.pos
	if i := strings.IndexByte(l.input[start:], '$'); i >= 0 {
		l.pos = start + i + 1
		return l.input[start : start+i]
	}
	l.pos = len(l.input) + 1
	return l.input[start:]
}

func (l *lexer) done() bool {
	return l.pos > len(l.input)
}

// fields returns exactly fieldCount tokens following the leading '$'.
func (l *lexer) fields() ([]string, error) {
	if !strings.HasPrefix(l.input, "$") {
		return nil, newFormatError("prefix", "hash must start with '$'")
	}
	l.pos = 1

	fields := make([]string, 0, fieldCount)
	for !l.done() {
		if len(fields) == fieldCount {
			return nil, newFormatError("fields", "expected %d fields, got more", fieldCount)
		}
		fields = append(fields, l.next())
	}
	if len(fields) != fieldCount {
		return nil, newFormatError("fields", "expected %d fields, got %d", fieldCount, len(fields))
	}
	return fields, nil
}

func parseVersion(field string) (Version, error) {
	digits, ok := strings.CutPrefix(field, "v=")
	if !ok {
		return 0, newFormatError("version", "missing 'v=' prefix")
	}
	n, err := parseDecimal(digits)
	if err != nil {
		return 0, &FormatError{Field: "version", Err: err}
	}
	v := Version(n)
	if err := validateVersion(v); err != nil {
		return 0, &FormatError{Field: "version", Err: err}
	}
	return v, nil
}

func parseParams(field string) (Params, error) {
	parts := strings.Split(field, ",")
	if len(parts) != 3 {
		return Params{}, newFormatError("params", "expected m, t and p, got %d parameters", len(parts))
	}

	var values [3]uint32
	for i, spec := range [3]struct{ prefix, field string }{
		{"m=", "memoryCost"},
		{"t=", "timeCost"},
		{"p=", "parallelism"},
	} {
		digits, ok := strings.CutPrefix(parts[i], spec.prefix)
		if !ok {
			return Params{}, newFormatError(spec.field, "expected %q prefix", spec.prefix)
		}
		n, err := parseDecimal(digits)
		if err != nil {
			return Params{}, &FormatError{Field: spec.field, Err: err}
		}
		values[i] = n
	}

	p := Params{MemoryCost: values[0], TimeCost: values[1], Parallelism: values[2]}
	if err := validateTimeCost(p.TimeCost); err != nil {
		return Params{}, &FormatError{Field: "timeCost", Err: err}
	}
	if err := validateParallelism(p.Parallelism); err != nil {
		return Params{}, &FormatError{Field: "parallelism", Err: err}
	}
	if err := validateMemoryCost(p.MemoryCost); err != nil {
		return Params{}, &FormatError{Field: "memoryCost", Err: err}
	}
	if err := validateMemoryForLanes(p.MemoryCost, p.Parallelism); err != nil {
		return Params{}, &FormatError{Field: "memoryCost", Err: err}
	}
	return p, nil
}

var (
	errEmptyNumber   = errors.New("empty number")
	errNotDecimal    = errors.New("not a decimal number")
	errNumberTooLong = errors.New("number does not fit in 32 bits")
	errLineBreak     = errors.New("line breaks are not allowed")
)

// parseDecimal accepts unsigned decimal numbers: ASCII digits only, no sign.
// Leading zeros are accepted; String never writes them.
func parseDecimal(s string) (uint32, error) {
	if s == "" {
		return 0, errEmptyNumber
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errNotDecimal
		}
		n = n*10 + uint64(c-'0')
		if n > math.MaxUint32 {
			return 0, errNumberTooLong
		}
	}
	return uint32(n), nil
}

func decodeBase64(field, s string) ([]byte, error) {
	// the decoder skips CR and LF; such input would not re-encode to itself
	if strings.ContainsAny(s, "\r\n") {
		return nil, &FormatError{Field: field, Err: errLineBreak}
	}
	b, err := b64.DecodeString(s)
	if err != nil {
		return nil, &FormatError{Field: field, Err: err}
	}
	return b, nil
}

func checkLength(field string, n, minLen, want int) error {
	if n < minLen {
		return newFormatError(field, "must be at least %d bytes, got %d", minLen, n)
	}
	if uint64(n) > math.MaxUint32 {
		return newFormatError(field, "must be at most %d bytes, got %d", uint64(math.MaxUint32), n)
	}
	if want > 0 && n != want {
		return newFormatError(field, "expected %d bytes, got %d", want, n)
	}
	return nil
}
