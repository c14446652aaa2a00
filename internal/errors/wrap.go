package errors

import "fmt"

// Wrap adds context to an error at a package boundary. It returns nil when
// err is nil so call sites can wrap unconditionally.
//
// The original chain is preserved, so errors.Is still matches sentinels
// through the added context:
//
//	if err := store.Persist(ctx, led); err != nil {
//	    return errors.Wrap(err, "failed to persist ledger")
//	}
//
// Wrap once per boundary; wrapping every call frame buries the message.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a format string, for contexts that interpolate values:
//
//	return errors.Wrapf(err, "failed to validate %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
