package validator

import (
	"errors"
	"strings"
)

var (
	ErrNameRequired        = errors.New("name is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrCategoryRequired    = errors.New("category is required")
	ErrPriceNotPositive    = errors.New("price must be positive")
)

// 商品フォームの入力を検証。
// 画像URLは任意なのでここでは見ない。
func ValidateProductInput(name string, description string, price int64, category string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(description) == "" {
		return ErrDescriptionRequired
	}
	if strings.TrimSpace(category) == "" {
		return ErrCategoryRequired
	}
	if price <= 0 {
		return ErrPriceNotPositive
	}
	return nil
}
