package command

import (
	"fmt"
	"strings"
)

type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Success(message string) string {
	return message
}

// Failure renders an expected, user-caused problem.
func (f *ResponseFormatter) Failure(message string) string {
	return "Error: " + message
}

func (f *ResponseFormatter) Error(err error) string {
	return "Error: " + err.Error()
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("%s: %s", label, value)
}

func (f *ResponseFormatter) Unknown(input string) string {
	return fmt.Sprintf("Command << %s >> does not exist.", input)
}

func (f *ResponseFormatter) List(items [][2]string) string {
	width := 0
	for _, item := range items {
		if len(item[0]) > width {
			width = len(item[0])
		}
	}

	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%-*s  %s", width, item[0], item[1]))
	}
	return sb.String()
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}
