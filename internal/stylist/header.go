package stylist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dunglas/httpsfv"
)

// ClientInfo identifies the calling application, parsed from the optional
// Stylist-Client header.
type ClientInfo struct {
	App     string
	Version string
}

// ParseClientHeader extracts app and version from a Stylist-Client header.
// Format: app="storefront-web";version="2.1" (RFC 8941 Dictionary).
//
// Examples:
//   - app="storefront-web"                    → {App: "storefront-web"}
//   - app="ios";version="3.0"                 → {App: "ios", Version: "3.0"}
//
// Returns error if the header is present but malformed or missing the app
// key. Callers handle the absent-header case themselves.
func ParseClientHeader(header string) (*ClientInfo, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, errors.New("empty Stylist-Client header")
	}

	dict, err := httpsfv.UnmarshalDictionary([]string{header})
	if err != nil {
		return nil, fmt.Errorf("invalid Stylist-Client header: %w", err)
	}

	member, ok := dict.Get("app")
	if !ok {
		return nil, errors.New("app key not found in Stylist-Client header")
	}

	item, ok := member.(httpsfv.Item)
	if !ok {
		return nil, errors.New("app value must be an item")
	}

	app, ok := item.Value.(string)
	if !ok {
		return nil, errors.New("app value must be a string")
	}

	info := &ClientInfo{App: app}

	// version can ride as a parameter of app (the ";" form) or as its own
	// dictionary member (the "," form).
	if v, ok := item.Params.Get("version"); ok {
		if s, ok := v.(string); ok {
			info.Version = s
		}
	} else if member, ok := dict.Get("version"); ok {
		if item, ok := member.(httpsfv.Item); ok {
			if s, ok := item.Value.(string); ok {
				info.Version = s
			}
		}
	}

	return info, nil
}
