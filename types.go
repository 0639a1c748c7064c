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
	json "github.com/goccy/go-json"
)

// ElementType enumerates the backend person/entity types used in element
// references and session identities.
type ElementType int

const (
	ElementTypeKlasse  ElementType = 1
	ElementTypeTeacher ElementType = 2
	ElementTypeSubject ElementType = 3
	ElementTypeRoom    ElementType = 4
	ElementTypeStudent ElementType = 5
)

// KeyType selects how an element reference id is interpreted by the backend.
type KeyType string

const (
	KeyTypeID          KeyType = "id"
	KeyTypeName        KeyType = "name"
	KeyTypeExternalKey KeyType = "externalkey"
)

// FieldChoice selects which fields the backend echoes back for each
// timetable element.
type FieldChoice string

const (
	FieldID          FieldChoice = "id"
	FieldName        FieldChoice = "name"
	FieldExternalKey FieldChoice = "externalkey"
	FieldLongName    FieldChoice = "longname"
)

// AllFieldChoices lists every field choice, requested for all entity types by
// GetTimeTable.
var AllFieldChoices = []FieldChoice{FieldID, FieldName, FieldExternalKey, FieldLongName}

// Session structure holds the server-issued credential bundle identifying an
// authenticated user context.
type Session struct {
	SessionID  string      `json:"sessionId"`
	PersonType ElementType `json:"personType"`
	PersonID   int         `json:"personId"`
	KlasseID   int         `json:"klasseId"`
}

// ElementRef references a single timetable element by id and type.
type ElementRef struct {
	ID      int         `json:"id"`
	Type    ElementType `json:"type"`
	KeyType KeyType     `json:"keyType,omitempty"`
}

// TimeTableOptions structure holds the full getTimetable query: anchored
// element, optional YYYYMMDD date range, display flags and per-entity-type
// field selections.
type TimeTableOptions struct {
	Element           ElementRef    `json:"element"`
	StartDate         string        `json:"startDate,omitempty"`
	EndDate           string        `json:"endDate,omitempty"`
	OnlyBaseTimetable bool          `json:"onlyBaseTimetable"`
	ShowBooking       bool          `json:"showBooking"`
	ShowInfo          bool          `json:"showInfo"`
	ShowSubstText     bool          `json:"showSubstText"`
	ShowLsText        bool          `json:"showLsText"`
	ShowLsNumber      bool          `json:"showLsNumber"`
	ShowStudentgroup  bool          `json:"showStudentgroup"`
	KlasseFields      []FieldChoice `json:"klasseFields,omitempty"`
	RoomFields        []FieldChoice `json:"roomFields,omitempty"`
	SubjectFields     []FieldChoice `json:"subjectFields,omitempty"`
	TeacherFields     []FieldChoice `json:"teacherFields,omitempty"`
}

// LessonType enumerates the backend period type short codes.
type LessonType string

const (
	LessonTypeLesson           LessonType = "ls"
	LessonTypeOfficeHour       LessonType = "oh"
	LessonTypeStandby          LessonType = "sb"
	LessonTypeBreakSupervision LessonType = "bs"
	LessonTypeExam             LessonType = "ex"
)

// LessonCode enumerates the backend irregularity codes.
type LessonCode string

const (
	LessonCodeCancelled LessonCode = "cancelled"
	LessonCodeIrregular LessonCode = "irregular"
)

// LessonElement is one klasse/teacher/subject/room attached to a lesson,
// carrying only the fields selected by the query.
type LessonElement struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	LongName    string `json:"longname,omitempty"`
	ExternalKey string `json:"externalkey,omitempty"`
}

// Lesson structure holds a single period-level timetable record. Date and
// times use the backend compact numeric encodings (YYYYMMDD and [H]HMM).
type Lesson struct {
	ID           int             `json:"id"`
	Date         int             `json:"date"`
	StartTime    int             `json:"startTime"`
	EndTime      int             `json:"endTime"`
	LsType       LessonType      `json:"lstype,omitempty"`
	Code         LessonCode      `json:"code,omitempty"`
	Info         string          `json:"info,omitempty"`
	SubstText    string          `json:"substText,omitempty"`
	LsText       string          `json:"lstext,omitempty"`
	LsNumber     int             `json:"lsnumber,omitempty"`
	StatFlags    string          `json:"statflags,omitempty"`
	ActivityType string          `json:"activityType,omitempty"`
	StudentGroup string          `json:"sg,omitempty"`
	BkRemark     string          `json:"bkRemark,omitempty"`
	BkText       string          `json:"bkText,omitempty"`
	Klassen      []LessonElement `json:"kl,omitempty"`
	Teachers     []LessonElement `json:"te,omitempty"`
	Subjects     []LessonElement `json:"su,omitempty"`
	Rooms        []LessonElement `json:"ro,omitempty"`
}

// EntryStatus enumerates the per-element status in a calendar entry.
type EntryStatus string

const (
	EntryStatusRegular     EntryStatus = "REGULAR"
	EntryStatusAbsent      EntryStatus = "ABSENT"
	EntryStatusSubstituted EntryStatus = "SUBSTITUTED"
)

// CalendarElement is one room/teacher/subject/klasse attached to a calendar
// entry together with its status.
type CalendarElement struct {
	ID          int         `json:"id"`
	ShortName   string      `json:"shortName,omitempty"`
	LongName    string      `json:"longName,omitempty"`
	DisplayName string      `json:"displayName,omitempty"`
	Status      EntryStatus `json:"status,omitempty"`
}

// CalendarEntry structure holds one timetable occurrence in detail. The
// exam/homework/booking/video-call sub-objects are raw passthrough values
// from the backend; no semantics are enforced beyond typing.
type CalendarEntry struct {
	ID              int64             `json:"id"`
	PreviousEntryID *int64            `json:"previousEntryId,omitempty"`
	NextEntryID     *int64            `json:"nextEntryId,omitempty"`
	StartDateTime   string            `json:"startDateTime,omitempty"`
	EndDateTime     string            `json:"endDateTime,omitempty"`
	Type            string            `json:"type,omitempty"`
	Status          string            `json:"status,omitempty"`
	Color           string            `json:"color,omitempty"`
	Exam            json.RawMessage   `json:"exam,omitempty"`
	Homeworks       json.RawMessage   `json:"homeworks,omitempty"`
	Booking         json.RawMessage   `json:"booking,omitempty"`
	VideoCall       json.RawMessage   `json:"videoCall,omitempty"`
	Klasses         []CalendarElement `json:"klasses,omitempty"`
	Rooms           []CalendarElement `json:"rooms,omitempty"`
	Teachers        []CalendarElement `json:"teachers,omitempty"`
	Subjects        []CalendarElement `json:"subjects,omitempty"`
	TeachingContent  string            `json:"teachingContent,omitempty"`
	SubstitutionText string            `json:"substitutionText,omitempty"`
	Notes            string            `json:"notesAll,omitempty"`
	Permissions      []string          `json:"permissions,omitempty"`
}

// CalendarEntries is the wrapper returned by the calendar-entry detail
// endpoint.
type CalendarEntries struct {
	CalendarEntries []CalendarEntry `json:"calendarEntries"`
}

// Klasse structure holds one school class from the master data.
type Klasse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LongName string `json:"longName"`
	Active   bool   `json:"active"`
	Teacher1 int    `json:"teacher1,omitempty"`
	Teacher2 int    `json:"teacher2,omitempty"`
}

// Teacher structure holds one teacher from the master data.
type Teacher struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ForeName string `json:"foreName,omitempty"`
	LongName string `json:"longName,omitempty"`
	Active   bool   `json:"active"`
}

// Room structure holds one room from the master data.
type Room struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LongName string `json:"longName,omitempty"`
	Active   bool   `json:"active"`
	Building string `json:"building,omitempty"`
}

// Subject structure holds one subject from the master data.
type Subject struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LongName      string `json:"longName,omitempty"`
	AlternateName string `json:"alternateName,omitempty"`
	Active        bool   `json:"active"`
}

// SchoolYear structure holds one school year with its compact date bounds.
type SchoolYear struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartDate int    `json:"startDate"`
	EndDate   int    `json:"endDate"`
}

// Holiday structure holds one holiday with its compact date bounds.
type Holiday struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	LongName  string `json:"longName,omitempty"`
	StartDate int    `json:"startDate"`
	EndDate   int    `json:"endDate"`
}

// TimeUnit is a single named slot in the time grid with compact [H]HMM
// bounds.
type TimeUnit struct {
	Name      string `json:"name"`
	StartTime int    `json:"startTime"`
	EndTime   int    `json:"endTime"`
}

// TimegridDay holds the time grid for one weekday.
type TimegridDay struct {
	Day       int        `json:"day"`
	TimeUnits []TimeUnit `json:"timeUnits"`
}
