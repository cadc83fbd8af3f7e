package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuantityPlaces là số chữ số thập phân giữ lại cho định lượng nguyên liệu
const QuantityPlaces int32 = 3

// DecimalPtr chuyển float8 nullable của Postgres sang decimal, làm tròn theo places
func DecimalPtr(number *float64, places int32) *decimal.Decimal {
	if number == nil {
		return nil
	}
	d := decimal.NewFromFloat(*number).Round(places)
	return &d
}

// UUIDOrNil trả về uuid.Nil khi chuỗi không phải UUID hợp lệ
func UUIDOrNil(s string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// TrimToNil trả về nil khi chuỗi rỗng sau khi trim, để lưu NULL thay vì ""
func TrimToNil(s *string) *string {
	if IsBlank(s) {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// IsBlank: nil, rỗng hoặc chỉ có khoảng trắng
func IsBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
