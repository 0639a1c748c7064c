// @license
// Copyright (C) 2025  Tynobi Company
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
	"time"
)

// GetKlassen fetches all school classes from the master data.
func (c *Client) GetKlassen(ctx context.Context) ([]Klasse, error) {
	var klassen []Klasse
	if err := c.masterRequest(ctx, "getKlassen", &klassen); err != nil {
		return nil, err
	}

	return klassen, nil
}

// GetTeachers fetches all teachers from the master data.
func (c *Client) GetTeachers(ctx context.Context) ([]Teacher, error) {
	var teachers []Teacher
	if err := c.masterRequest(ctx, "getTeachers", &teachers); err != nil {
		return nil, err
	}

	return teachers, nil
}

// GetRooms fetches all rooms from the master data.
func (c *Client) GetRooms(ctx context.Context) ([]Room, error) {
	var rooms []Room
	if err := c.masterRequest(ctx, "getRooms", &rooms); err != nil {
		return nil, err
	}

	return rooms, nil
}

// GetSubjects fetches all subjects from the master data.
func (c *Client) GetSubjects(ctx context.Context) ([]Subject, error) {
	var subjects []Subject
	if err := c.masterRequest(ctx, "getSubjects", &subjects); err != nil {
		return nil, err
	}

	return subjects, nil
}

// GetHolidays fetches all holidays of the running school year.
func (c *Client) GetHolidays(ctx context.Context) ([]Holiday, error) {
	var holidays []Holiday
	if err := c.masterRequest(ctx, "getHolidays", &holidays); err != nil {
		return nil, err
	}

	return holidays, nil
}

// GetSchoolYears fetches all school years known to the backend.
func (c *Client) GetSchoolYears(ctx context.Context) ([]SchoolYear, error) {
	var years []SchoolYear
	if err := c.masterRequest(ctx, "getSchoolyears", &years); err != nil {
		return nil, err
	}

	return years, nil
}

// GetCurrentSchoolYear fetches the currently running school year.
func (c *Client) GetCurrentSchoolYear(ctx context.Context) (SchoolYear, error) {
	var year SchoolYear
	if err := c.masterRequest(ctx, "getCurrentSchoolyear", &year); err != nil {
		return SchoolYear{}, err
	}

	return year, nil
}

// GetTimegridUnits fetches the per-weekday time grid.
func (c *Client) GetTimegridUnits(ctx context.Context) ([]TimegridDay, error) {
	var grid []TimegridDay
	if err := c.masterRequest(ctx, "getTimegridUnits", &grid); err != nil {
		return nil, err
	}

	return grid, nil
}

// GetLatestImportTime fetches the timestamp of the backend's most recent
// underlying data refresh. The same value bounds session validity during
// authentication.
func (c *Client) GetLatestImportTime(ctx context.Context) (time.Time, error) {
	if _, err := c.EnsureSession(ctx); err != nil {
		return time.Time{}, err
	}

	var latest int64
	if err := c.rpcRequest(ctx, "getLatestImportTime", nil, &latest); err != nil {
		return time.Time{}, err
	}

	return time.UnixMilli(latest), nil
}

// masterRequest ensures a session and issues one parameterless JSON-RPC
// master-data read.
func (c *Client) masterRequest(ctx context.Context, method string, out any) error {
	if _, err := c.EnsureSession(ctx); err != nil {
		return err
	}

	return c.rpcRequest(ctx, method, nil, out)
}
