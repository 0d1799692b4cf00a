package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Layout формат времени HH:MM
const Layout = "15:04"

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("invalid time string format")
)

// TimeString время суток в формате "HH:MM" (без даты)
// Используется для времени слотов, начала/конца работы магазина
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(Layout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(Layout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return TimeString(s), nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет корректность формата
func (t TimeString) Validate() error {
	if _, err := time.Parse(Layout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return nil
}

// parse возвращает time.Time на нулевой дате для сравнений
func (t TimeString) parse() (time.Time, error) {
	parsed, err := time.Parse(Layout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return parsed, nil
}

// IsBefore возвращает true, если t строго раньше other
// Некорректные значения считаются "не раньше"
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.parse()
	if err != nil {
		return false
	}
	b, err := other.parse()
	if err != nil {
		return false
	}
	return a.Before(b)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.parse()
	if err != nil {
		return false
	}
	b, err := other.parse()
	if err != nil {
		return false
	}
	return a.After(b)
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
// Результат остается в пределах суток (без перехода через полночь)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := t.parse()
	if err != nil {
		return "", err
	}
	return TimeString(parsed.Add(time.Duration(minutes) * time.Minute).Format(Layout)), nil
}

// MinutesUntil возвращает количество минут от t до other (может быть отрицательным)
func (t TimeString) MinutesUntil(other TimeString) (int, error) {
	a, err := t.parse()
	if err != nil {
		return 0, err
	}
	b, err := other.parse()
	if err != nil {
		return 0, err
	}
	return int(b.Sub(a).Minutes()), nil
}

// Value реализация driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализация sql.Scanner для чтения из БД
// Поддерживает строки, []byte и time.Time (колонки типа TIME)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Колонки TIME приходят как "HH:MM:SS" - отрезаем секунды
	if len(s) > len(Layout) {
		s = s[:len(Layout)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
