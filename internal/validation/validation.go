package validation

import (
	"fmt"
	"regexp"
)

// ErrInvalidIDPrefix indicates an ID (or ID prefix) with characters a UUID cannot contain.
var ErrInvalidIDPrefix = fmt.Errorf("invalid ID prefix")

var idPrefixPattern = regexp.MustCompile(`^[0-9a-fA-F-]{1,36}$`)

// ValidateIDPrefix checks that id could be the start of a UUID.
func ValidateIDPrefix(id string) error {
	if !idPrefixPattern.MatchString(id) {
		return fmt.Errorf("%w: %s", ErrInvalidIDPrefix, id)
	}
	return nil
}
