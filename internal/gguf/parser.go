package gguf

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
)

// File represents a parsed GGUF file.
type File struct {
	Header   Header
	Metadata *Metadata
	Tensors  []TensorInfo

	// Alignment comes from general.alignment, DefaultAlignment otherwise.
	Alignment uint64
	// DataOffset is where the tensor data section starts, relative to
	// the start of the parsed stream.
	DataOffset uint64

	log *slog.Logger
}

type options struct {
	maxStringLength uint64
	maxArrayLength  uint64
	maxArrayDepth   int
	logger          *slog.Logger
}

// Option configures Parse and ParseFile.
type Option func(*options)

// WithMaxStringLength caps the length of any decoded string. 0 disables
// the check.
func WithMaxStringLength(n uint64) Option {
	return func(o *options) { o.maxStringLength = n }
}

// WithMaxArrayLength caps the element count of any decoded array. 0
// disables the check.
func WithMaxArrayLength(n uint64) Option {
	return func(o *options) { o.maxArrayLength = n }
}

// WithMaxArrayDepth caps how deeply arrays may nest. n <= 0 selects
// DefaultMaxArrayDepth; nesting is always bounded.
func WithMaxArrayDepth(n int) Option {
	return func(o *options) { o.maxArrayDepth = n }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{
		maxStringLength: DefaultMaxStringLength,
		maxArrayLength:  DefaultMaxArrayLength,
		maxArrayDepth:   DefaultMaxArrayDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxArrayDepth <= 0 {
		o.maxArrayDepth = DefaultMaxArrayDepth
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Parse reads the header, metadata and tensor descriptors from r in one
// pass. It reads nothing past the tensor descriptor table, and returns
// either a complete File or an error.
//
// r must not be used concurrently while Parse runs.
func Parse(r io.Reader, opts ...Option) (*File, error) {
	o := buildOptions(opts)
	p := newReader(r, o)

	header, err := p.readHeader()
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	o.logger.Debug("gguf header", "version", header.Version,
		"tensors", header.TensorCount, "metadata", header.MetadataKVCount)

	md, err := p.readMetadata(header.MetadataKVCount)
	if err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}

	tensors := make([]TensorInfo, 0, min(header.TensorCount, 1<<16))
	for i := uint64(0); i < header.TensorCount; i++ {
		t, err := p.readTensorInfo()
		if err != nil {
			return nil, fmt.Errorf("parse tensor info %d: %w", i, err)
		}
		tensors = append(tensors, t)
	}

	alignment := uint64(DefaultAlignment)
	if a, ok := md.GetUint32("general.alignment"); ok && a > 0 {
		alignment = uint64(a)
	}

	f := &File{
		Header:     header,
		Metadata:   md,
		Tensors:    tensors,
		Alignment:  alignment,
		DataOffset: alignOffset(uint64(p.off), alignment), //nolint:gosec // G115: offset is never negative.
		log:        o.logger,
	}
	o.logger.Debug("gguf parsed", "bytes", p.off, "data_offset", f.DataOffset)

	return f, nil
}

// ParseFile opens path and parses it through a buffered reader.
//
//nolint:gosec // G304: path comes from trusted caller, not user input.
func ParseFile(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(fmt.Errorf("open file: %w", err))
	}
	defer func() {
		_ = f.Close() // Ignore close error on read-only file.
	}()

	return Parse(bufio.NewReaderSize(f, 64<<10), opts...)
}

// ModelConfig extracts the model configuration from the metadata.
func (f *File) ModelConfig() (*ModelConfig, error) {
	log := f.log
	if log == nil {
		log = slog.Default()
	}
	return fromMetadata(f.Metadata, log)
}

// TotalSize sums SizeBytes over all tensors.
func (f *File) TotalSize() uint64 {
	var total uint64
	for i := range f.Tensors {
		total += f.Tensors[i].SizeBytes()
	}
	return total
}

// IsQuantized reports whether any tensor uses a quantized encoding.
func (f *File) IsQuantized() bool {
	return slices.ContainsFunc(f.Tensors, func(t TensorInfo) bool {
		return t.Type.IsQuantized()
	})
}

// QuantizationTypes returns the distinct encodings in use, ordered by code.
func (f *File) QuantizationTypes() []QuantizationType {
	types := make([]QuantizationType, 0, len(f.Tensors))
	for _, t := range f.Tensors {
		types = append(types, t.Type)
	}
	slices.Sort(types)
	return slices.Compact(types)
}

// TensorByName finds a tensor by name.
func (f *File) TensorByName(name string) (*TensorInfo, bool) {
	i := slices.IndexFunc(f.Tensors, func(t TensorInfo) bool { return t.Name == name })
	if i < 0 {
		return nil, false
	}
	return &f.Tensors[i], true
}

// alignOffset rounds offset up to a multiple of alignment.
func alignOffset(offset, alignment uint64) uint64 {
	if alignment == 0 || offset%alignment == 0 {
		return offset
	}
	return offset + (alignment - offset%alignment)
}
