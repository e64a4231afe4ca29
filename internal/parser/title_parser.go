package parser

import (
	"regexp"
	"strings"

	"github.com/omarbek/taskflow/internal/models"
)

// ParsedTask represents task metadata parsed from natural language
type ParsedTask struct {
	Title    string
	Project  string
	Tags     []string
	Priority models.Priority
	Errors   []string
}

var (
	tagRegex      = regexp.MustCompile(`#([a-zA-Z0-9_,-]+)`)
	projectRegex  = regexp.MustCompile(`@([a-zA-Z0-9_-]+)`)
	priorityRegex = regexp.MustCompile(`\+([a-zA-Z]+)`)
)

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Task title #tag1,tag2 @project +priority"
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Tags:   []string{},
		Errors: []string{},
	}

	// Extract tags (#tag1,tag2 or #tag1 #tag2)
	tagMatches := tagRegex.FindAllStringSubmatch(input, -1)
	for _, match := range tagMatches {
		if len(match) > 1 {
			// Split by comma in case of #tag1,tag2
			for _, tag := range strings.Split(match[1], ",") {
				tag = strings.TrimSpace(tag)
				if tag != "" {
					result.Tags = append(result.Tags, tag)
				}
			}
		}
	}
	input = tagRegex.ReplaceAllString(input, "")

	// Extract project (@project-name)
	projectMatches := projectRegex.FindStringSubmatch(input)
	if len(projectMatches) > 1 {
		result.Project = projectMatches[1]
		input = projectRegex.ReplaceAllString(input, "")
	}

	// Extract priority (+low, +medium, +high, +urgent)
	priorityMatches := priorityRegex.FindStringSubmatch(input)
	if len(priorityMatches) > 1 {
		priority := models.Priority(strings.ToLower(priorityMatches[1]))
		if priority.Valid() {
			result.Priority = priority
		} else {
			result.Errors = append(result.Errors, "Invalid priority '"+priorityMatches[1]+"'. Use: low, medium, high or urgent")
		}
		input = priorityRegex.ReplaceAllString(input, "")
	}

	// Whatever is left becomes the title
	result.Title = strings.Join(strings.Fields(input), " ")
	if result.Title == "" {
		result.Errors = append(result.Errors, "Task title cannot be empty")
	}

	return result
}
