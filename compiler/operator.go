package compiler

import (
	"fmt"
	"regexp"

	"github.com/corvidsec/matchengine/config"
	"github.com/corvidsec/matchengine/operator"
)

// compileOperator recursively builds an operator.Operator from its
// tagged-union DTO.
func compileOperator(dto *config.OperatorDto, path string) (*operator.Operator, error) {
	if dto == nil {
		return nil, nil
	}

	switch dto.Type {
	case "AND", "and":
		children, err := compileOperatorChildren(dto.Operators, path+"/AND")
		if err != nil {
			return nil, err
		}
		op := operator.And(children...)
		return &op, nil

	case "OR", "or":
		children, err := compileOperatorChildren(dto.Operators, path+"/OR")
		if err != nil {
			return nil, err
		}
		op := operator.Or(children...)
		return &op, nil

	case "contain", "equal", "ge", "gt", "le", "lt":
		first, err := compileOperand(dto.First, path+"/first")
		if err != nil {
			return nil, err
		}
		second, err := compileOperand(dto.Second, path+"/second")
		if err != nil {
			return nil, err
		}
		var op operator.Operator
		switch dto.Type {
		case "contain":
			op = operator.Contain(first, second)
		case "equal":
			op = operator.Equal(first, second)
		case "ge":
			op = operator.Ge(first, second)
		case "gt":
			op = operator.Gt(first, second)
		case "le":
			op = operator.Le(first, second)
		case "lt":
			op = operator.Lt(first, second)
		}
		return &op, nil

	case "regex":
		re, err := regexp.Compile(dto.Regex)
		if err != nil {
			return nil, newError(InvalidRegex, path+"/regex", "%v", err)
		}
		target, err := compileBareAccessor(dto.Target, path+"/target")
		if err != nil {
			return nil, err
		}
		op := operator.Regex(re, operator.AccessorOperand(target))
		return &op, nil

	default:
		return nil, newError(MissingField, path, "unknown operator type %q", dto.Type)
	}
}

func compileOperatorChildren(dtos []config.OperatorDto, path string) ([]operator.Operator, error) {
	children := make([]operator.Operator, len(dtos))
	for i := range dtos {
		c, err := compileOperator(&dtos[i], fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children[i] = *c
	}
	return children, nil
}
