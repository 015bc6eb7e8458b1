package cmd

import (
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
	"github.com/PolarWolf314/gitops-secrets/internal/masterkey"
	"github.com/PolarWolf314/gitops-secrets/internal/providers"
	"github.com/PolarWolf314/gitops-secrets/internal/ui"
)

// exitCodeError carries a child process exit status out of run.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// formatError renders err for the terminal with a hint where one helps.
func formatError(err error) string {
	msg := ui.Error.Sprint("✗") + " " + err.Error()

	switch {
	case errors.Is(err, kerrors.ErrConfiguration):
		return msg + "\n" + ui.Info.Sprint("→") + " Set " + ui.Code.Sprint(masterkey.EnvVar) +
			" to a key of at least " + fmt.Sprint(masterkey.MinLength) + " characters, or run " +
			ui.Code.Sprint("gitops-secrets key generate")

	case errors.Is(err, kerrors.ErrDecryption):
		return msg + "\n" + ui.Info.Sprint("→") + " Check that " + ui.Code.Sprint(masterkey.EnvVar) +
			" is the key the file was encrypted with"

	case errors.Is(err, kerrors.ErrFileNotFound):
		return msg + "\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("gitops-secrets encrypt") + " first"

	case errors.Is(err, kerrors.ErrUnknownProvider):
		return msg + "\n" + ui.Info.Sprint("→") + " Available providers: " + ui.Key.Sprint(strings.Join(providers.Names(), ", "))

	case errors.Is(err, kerrors.ErrAlreadyInitialized):
		return msg + "\n" + ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to overwrite it"

	default:
		return msg
	}
}
