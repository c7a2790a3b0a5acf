package memory

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"moviereviews/application/ports"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// evaluate applies a condition to an item. A nil item has no attributes.
func evaluate(c *ports.Condition, row item) (bool, error) {
	switch c.Op {
	case ports.OpAnd:
		for _, operand := range c.Operands {
			ok, err := evaluate(operand, row)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case ports.OpAttributeExists:
		_, ok := row[c.Attribute]
		return ok, nil
	}

	actual, present := row[c.Attribute]
	if !present {
		return false, nil
	}
	expected, err := attributevalue.Marshal(c.Value)
	if err != nil {
		return false, fmt.Errorf("failed to marshal condition value: %w", err)
	}

	switch c.Op {
	case ports.OpEqual:
		cmp, ok := compare(actual, expected)
		if ok {
			return cmp == 0, nil
		}
		return reflect.DeepEqual(actual, expected), nil
	case ports.OpGreaterThan:
		cmp, ok := compare(actual, expected)
		return ok && cmp > 0, nil
	case ports.OpBeginsWith:
		s, ok := actual.(*types.AttributeValueMemberS)
		prefix, pok := expected.(*types.AttributeValueMemberS)
		return ok && pok && strings.HasPrefix(s.Value, prefix.Value), nil
	}
	return false, fmt.Errorf("unsupported condition operator %q", c.Op)
}

// compare orders two scalars of the same type. ok is false when the values
// are not comparable.
func compare(a, b types.AttributeValue) (int, bool) {
	switch av := a.(type) {
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		if !ok {
			return 0, false
		}
		x, err := strconv.ParseFloat(av.Value, 64)
		if err != nil {
			return 0, false
		}
		y, err := strconv.ParseFloat(bv.Value, 64)
		if err != nil {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		if !ok {
			return 0, false
		}
		return strings.Compare(av.Value, bv.Value), true
	}
	return 0, false
}
