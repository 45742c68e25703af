package gguf

import "fmt"

// readHeader reads the 20-byte preamble. The magic is checked before the
// version is read, and the version before the counts.
func (r *reader) readHeader() (Header, error) {
	var h Header

	if err := r.readFull(h.Magic[:]); err != nil {
		return h, fmt.Errorf("read magic: %w", err)
	}
	if string(h.Magic[:]) != Magic {
		e := formatError(ErrInvalidMagic)
		e.Magic = h.Magic
		return h, e
	}

	version, err := r.readU32()
	if err != nil {
		return h, fmt.Errorf("read version: %w", err)
	}
	if version != Version3 {
		e := formatError(ErrUnsupportedVersion)
		e.Version = version
		return h, e
	}
	h.Version = version

	if h.TensorCount, err = r.readU64(); err != nil {
		return h, fmt.Errorf("read tensor count: %w", err)
	}
	if h.MetadataKVCount, err = r.readU64(); err != nil {
		return h, fmt.Errorf("read metadata kv count: %w", err)
	}

	return h, nil
}
