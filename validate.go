package formstream

import "fmt"

// validateForm checks a form against its limits before any framing is
// produced. It never opens a source; part sizes are the declared sizes.
func validateForm(boundary string, parts []Part, limits Limits) error {
	if err := validateBoundary(boundary); err != nil {
		return err
	}
	if len(parts) > limits.MaxParts {
		return fmt.Errorf("%w: %d parts, maximum is %d", ErrLimitExceeded, len(parts), limits.MaxParts)
	}
	for i, p := range parts {
		if p == nil {
			return fmt.Errorf("%w: part %d is nil", ErrValidation, i)
		}
		if fp, ok := p.(filePart); ok && fp.src == nil {
			return fmt.Errorf("%w: part %q has no source", ErrValidation, fp.name)
		}
		size := p.Size()
		if size < 0 {
			return fmt.Errorf("%w: part %q declares negative size %d", ErrValidation, p.Name(), size)
		}
		if size > limits.MaxPartSize {
			return fmt.Errorf("%w: part %q size %d, maximum is %d", ErrLimitExceeded, p.Name(), size, limits.MaxPartSize)
		}
	}
	if total := totalLength(boundary, parts); total > limits.MaxTotalLength {
		return fmt.Errorf("%w: encoded length %d, maximum is %d", ErrLimitExceeded, total, limits.MaxTotalLength)
	}
	return nil
}
