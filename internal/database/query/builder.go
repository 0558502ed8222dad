// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

// Package query provides SQL query building utilities for the database package.
// It reduces code duplication and provides type-safe query construction.
package query

import (
	"fmt"
	"strings"
	"time"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
// User input never enters the SQL text itself; every value binds through
// a placeholder.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddDateRange(from, to)
//	wb.AddCategories([]int64{1, 2})
//	whereClause, args := wb.Build()
//	// WHERE starts_at >= ? AND starts_at <= ? AND ec.category_id IN (?, ?)
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw WHERE clause with its arguments.
// This is useful for custom conditions not covered by helper methods.
// The clause text must be a constant fragment with ? placeholders;
// values belong in args.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddDateRange adds start and/or end filters on the event start time.
// Nil dates are skipped, allowing open-ended ranges.
func (wb *WhereBuilder) AddDateRange(from, to *time.Time) *WhereBuilder {
	if from != nil {
		wb.clauses = append(wb.clauses, "e.starts_at >= ?")
		wb.args = append(wb.args, *from)
	}
	if to != nil {
		wb.clauses = append(wb.clauses, "e.starts_at <= ?")
		wb.args = append(wb.args, *to)
	}
	return wb
}

// AddCategories adds a category filter using an IN clause against the
// event_categories join. An empty slice is skipped.
func (wb *WhereBuilder) AddCategories(categoryIDs []int64) *WhereBuilder {
	if len(categoryIDs) > 0 {
		placeholders := make([]string, len(categoryIDs))
		for i, id := range categoryIDs {
			placeholders[i] = "?"
			wb.args = append(wb.args, id)
		}
		wb.clauses = append(wb.clauses, fmt.Sprintf(
			"e.id IN (SELECT ec.event_id FROM event_categories ec WHERE ec.category_id IN (%s))",
			strings.Join(placeholders, ", ")))
	}
	return wb
}

// AddStatuses adds an event status filter using an IN clause.
// Statuses are "upcoming", "ongoing", "finished", "cancelled".
func (wb *WhereBuilder) AddStatuses(statuses []string) *WhereBuilder {
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			wb.args = append(wb.args, status)
		}
		wb.clauses = append(wb.clauses, fmt.Sprintf("e.status IN (%s)", strings.Join(placeholders, ", ")))
	}
	return wb
}

// AddSearch adds a case-insensitive substring match over the event title
// and description. An empty term is skipped. The term binds as a single
// parameter; wildcards in the term are treated literally by escaping.
func (wb *WhereBuilder) AddSearch(term string) *WhereBuilder {
	if term == "" {
		return wb
	}
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(term)
	pattern := "%" + escaped + "%"
	wb.clauses = append(wb.clauses,
		`(e.title ILIKE ? ESCAPE '\' OR e.description ILIKE ? ESCAPE '\')`)
	wb.args = append(wb.args, pattern, pattern)
	return wb
}

// AddMinRating adds a lower bound on the event's crowd rating.
// Non-positive values are skipped.
func (wb *WhereBuilder) AddMinRating(minRating float64) *WhereBuilder {
	if minRating > 0 {
		wb.clauses = append(wb.clauses, "e.avg_rating >= ?")
		wb.args = append(wb.args, minRating)
	}
	return wb
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were added.
//
// Example:
//
//	whereClause, args := wb.Build()
//	query := fmt.Sprintf("SELECT * FROM events e WHERE %s", whereClause)
//	db.Query(query, args...)
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
// Useful for direct SQL construction without manual prefix addition.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}
