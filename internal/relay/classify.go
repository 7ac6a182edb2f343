package relay

import (
	"errors"
	"strings"

	"github.com/zhengjr9/promptyoo/internal/fallback"
	"github.com/zhengjr9/promptyoo/internal/provider"
)

// invalidKeyMessage is the user-facing notice for a rejected credential.
const invalidKeyMessage = ".env文件中的DEEPSEEK_API_KEY无效"

// classify maps an upstream failure to the terminal error frame. Credential
// problems get the fallback template attached so the client can offer a
// usable result instead of a dead end; everything else is surfaced as an
// opaque diagnostic.
//
// Besides the typed auth kind, the error text is matched case-insensitively
// against a known vocabulary ("api key", "authentication"). The string
// matching is part of the observable contract, not a stopgap: upstream SDK
// and transport errors arrive as flattened messages.
func classify(err error, prompt string, generate fallback.Generator) errorFrame {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}

	var perr *provider.Error
	isAuth := errors.As(err, &perr) && perr.Kind == provider.KindAuth
	if !isAuth {
		lower := strings.ToLower(msg)
		isAuth = strings.Contains(lower, "api key") || strings.Contains(lower, "authentication")
	}

	if isAuth {
		return errorFrame{
			Error:            invalidKeyMessage,
			Details:          msg,
			UseTemplate:      true,
			FallbackTemplate: generate(prompt),
		}
	}
	return errorFrame{
		Error:   "Failed to optimize prompt",
		Details: msg,
	}
}
