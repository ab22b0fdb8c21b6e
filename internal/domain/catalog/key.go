package catalog

import "tg-storefront/internal/pkg/validation"

func ValidateKey(key string) error {
	if !validation.IsKey(key) {
		return ErrInvalidKey
	}
	return nil
}
