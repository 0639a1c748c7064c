// @license
// Copyright (C) 2024  Tynobi Company
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package webuntis

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid compact date")
	ErrInvalidTime = errors.New("invalid compact time")
)

// EncodeDate encodes a calendar date into the backend compact YYYYMMDD
// string.
func EncodeDate(t time.Time) string {
	return fmt.Sprintf("%04d%02d%02d", t.Year(), t.Month(), t.Day())
}

// DecodeDate decodes a backend compact YYYYMMDD date into a calendar instant
// at midnight.
func DecodeDate(date int) (time.Time, error) {
	return DecodeDateTime(date, 0)
}

// DecodeDateTime decodes a backend compact YYYYMMDD date plus an [H]HMM time
// value (0-2359, no leading zero guaranteed) into a calendar instant.
func DecodeDateTime(date, hhmm int) (time.Time, error) {
	if date < 10000101 || date > 99991231 {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, date)
	}

	year := date / 10000
	month := date / 100 % 100
	day := date % 100

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, date)
	}

	if hhmm < 0 || hhmm > 2359 || hhmm%100 > 59 {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTime, hhmm)
	}

	hour := hhmm / 100
	minute := hhmm % 100

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}

// instantString formats an instant the way the calendar-entry detail
// endpoint expects: millisecond ISO-8601 with a Z suffix applied directly to
// the wall-clock fields, no timezone conversion.
func instantString(t time.Time) string {
	return t.Format("2006-01-02T15:04:05") + ".000Z"
}
