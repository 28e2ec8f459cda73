package jsonguard

import (
	"io"

	eng "github.com/reoring/jsonguard/internal/engine"
)

// DetectDuplicateKeys reports duplicate object keys in a JSON document.
// maxIssues < 0 means unlimited; 0 disables reporting. With Error severity
// detection stops at the first duplicate; Ignore reports nothing.
func DetectDuplicateKeys(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	si, err := eng.DetectJSONDuplicateKeysBytes(data, toEngineDup(strict.OnDuplicateKey), maxIssues)
	if err != nil {
		return nil, toValidationError(err)
	}
	return fromViolations(si), nil
}

// DetectDuplicateKeysReader is DetectDuplicateKeys over an io.Reader. The
// reader is consumed fully.
func DetectDuplicateKeysReader(r io.Reader, strict Strictness, maxIssues int) (Issues, error) {
	si, err := eng.DetectJSONDuplicateKeysReader(r, toEngineDup(strict.OnDuplicateKey), maxIssues)
	if err != nil {
		return nil, toValidationError(err)
	}
	return fromViolations(si), nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
