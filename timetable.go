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
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
)

const calendarEntryDetailPath = "view/v2/calendar-entry/detail"

// timetableParams wraps TimeTableOptions the way getTimetable expects them.
type timetableParams struct {
	Options TimeTableOptions `json:"options"`
}

// GetTimeTable fetches the timetable of the authenticated person, optionally
// bounded by start and end dates. The query is anchored on the session's own
// person identity, requests every display flag and echoes all four field
// choices for klasse, room, subject and teacher. Lessons are returned as the
// backend sent them.
func (c *Client) GetTimeTable(ctx context.Context, start, end *time.Time) ([]Lesson, error) {
	sess, err := c.EnsureSession(ctx)
	if err != nil {
		return nil, err
	}

	opts := TimeTableOptions{
		Element: ElementRef{
			ID:   sess.PersonID,
			Type: sess.PersonType,
		},
		ShowBooking:      true,
		ShowInfo:         true,
		ShowSubstText:    true,
		ShowLsText:       true,
		ShowLsNumber:     true,
		ShowStudentgroup: true,
		KlasseFields:     AllFieldChoices,
		RoomFields:       AllFieldChoices,
		SubjectFields:    AllFieldChoices,
		TeacherFields:    AllFieldChoices,
	}

	if start != nil {
		opts.StartDate = EncodeDate(*start)
	}

	if end != nil {
		opts.EndDate = EncodeDate(*end)
	}

	var lessons []Lesson
	if err := c.rpcRequest(ctx, "getTimetable", timetableParams{Options: opts}, &lessons); err != nil {
		return nil, err
	}

	return lessons, nil
}

// GetTimeTableWithRetry wraps GetTimeTable with a bounded number of retry
// attempts for flaky backends. The request engine itself never retries; this
// is an opt-in convenience for callers that would otherwise wrap the call
// themselves.
func (c *Client) GetTimeTableWithRetry(ctx context.Context, start, end *time.Time, attempts uint) ([]Lesson, error) {
	var lessons []Lesson

	err := retry.Do(
		func() error {
			var err error
			lessons, err = c.GetTimeTable(ctx, start, end)

			return err
		},
		retry.Attempts(attempts),
		retry.Context(ctx),
	)

	return lessons, err
}

// FetchCalendarEntryDetails fetches the detailed calendar entries covering
// one lesson. The lesson's compact date and times become full ISO instants
// and the query is issued bearer-authenticated against the calendar-entry
// detail endpoint; the decoded wrapper is returned unchanged.
func (c *Client) FetchCalendarEntryDetails(ctx context.Context, lesson Lesson) (CalendarEntries, error) {
	sess, err := c.EnsureSession(ctx)
	if err != nil {
		return CalendarEntries{}, err
	}

	start, err := DecodeDateTime(lesson.Date, lesson.StartTime)
	if err != nil {
		return CalendarEntries{}, err
	}

	end, err := DecodeDateTime(lesson.Date, lesson.EndTime)
	if err != nil {
		return CalendarEntries{}, err
	}

	query := url.Values{
		"elementId":     {strconv.Itoa(sess.PersonID)},
		"elementType":   {strconv.Itoa(int(sess.PersonType))},
		"startDateTime": {instantString(start)},
		"endDateTime":   {instantString(end)},
	}

	var entries CalendarEntries
	if err := c.apiRequest(ctx, http.MethodGet, RouteREST, calendarEntryDetailPath, query, authBearer, &entries); err != nil {
		return CalendarEntries{}, err
	}

	return entries, nil
}
