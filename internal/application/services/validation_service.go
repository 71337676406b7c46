package services

import (
	"fmt"
	"strings"

	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/christoffels/menu/pkg/errors"
	"github.com/christoffels/menu/pkg/expression"
)

// ValidationRule is a boolean expression that must hold for a menu item.
// The item is exposed to the expression through MenuItem.ToMap.
type ValidationRule struct {
	Name      string
	Field     string
	Condition string
	Message   string
}

// DefaultMenuItemRules are the rules every menu item must satisfy
func DefaultMenuItemRules() []ValidationRule {
	return []ValidationRule{
		{Name: "name_required", Field: constants.FieldName, Condition: "!ISBLANK(name)", Message: "is required"},
		{Name: "description_required", Field: constants.FieldDescription, Condition: "!ISBLANK(description)", Message: "is required"},
		{Name: "course_known", Field: constants.FieldCourse, Condition: "ISCOURSE(course)", Message: "must be one of " + courseList()},
		{Name: "price_positive", Field: constants.FieldPrice, Condition: "ISFINITE(price) && price > 0", Message: "must be a number greater than 0"},
	}
}

func courseList() string {
	names := make([]string, 0, len(models.Courses()))
	for _, c := range models.Courses() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// isCourse backs the ISCOURSE(course) rule function
func isCourse(params ...interface{}) (interface{}, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("ISCOURSE requires 1 argument")
	}
	s, ok := params[0].(string)
	if !ok {
		return false, nil
	}
	return models.Course(s).IsValid(), nil
}

// ValidationService handles menu item validation logic
type ValidationService struct {
	engine *expression.Engine
	rules  []ValidationRule
}

// NewValidationService creates a ValidationService with the default rules plus
// any extra conditions. Extra conditions are compiled up front so a bad
// configuration fails at startup.
func NewValidationService(engine *expression.Engine, extra []string) (*ValidationService, error) {
	vs := &ValidationService{
		engine: engine,
		rules:  DefaultMenuItemRules(),
	}
	engine.RegisterFunction("ISCOURSE", isCourse)

	sample := models.MenuItem{Course: models.CourseMains, Price: 1}.ToMap()
	for i, cond := range extra {
		cond = strings.TrimSpace(cond)
		if cond == "" {
			continue
		}
		if err := engine.Validate(cond, sample); err != nil {
			return nil, fmt.Errorf("invalid menu item rule %q: %w", cond, err)
		}
		vs.rules = append(vs.rules, ValidationRule{
			Name:      fmt.Sprintf("custom_%d", i+1),
			Condition: cond,
			Message:   "violates rule: " + cond,
		})
	}

	return vs, nil
}

// Rules returns the active rules in evaluation order
func (vs *ValidationService) Rules() []ValidationRule {
	out := make([]ValidationRule, len(vs.rules))
	copy(out, vs.rules)
	return out
}

// ValidateMenuItem returns the first rule the item violates as a ValidationError
func (vs *ValidationService) ValidateMenuItem(item models.MenuItem) error {
	env := item.ToMap()
	for _, rule := range vs.rules {
		ok, err := vs.engine.EvaluateBool(rule.Condition, env)
		if err != nil {
			return errors.NewValidationError(rule.Field, fmt.Sprintf("rule %s could not be evaluated: %v", rule.Name, err))
		}
		if !ok {
			return errors.NewValidationError(rule.Field, rule.Message)
		}
	}
	return nil
}
