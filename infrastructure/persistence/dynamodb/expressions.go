package dynamodb

import (
	"fmt"
	"sort"

	"moviereviews/application/ports"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
)

func keyCondition(kc ports.KeyCondition) (expression.KeyConditionBuilder, error) {
	if kc.PartitionKey == "" {
		return expression.KeyConditionBuilder{}, fmt.Errorf("key condition requires a partition key")
	}

	cond := expression.Key(kc.PartitionKey).Equal(expression.Value(kc.PartitionValue))
	if kc.SortKey == "" {
		return cond, nil
	}

	switch kc.SortOp {
	case ports.SortEqual, "":
		return cond.And(expression.Key(kc.SortKey).Equal(expression.Value(kc.SortValue))), nil
	case ports.SortBeginsWith:
		prefix, ok := kc.SortValue.(string)
		if !ok {
			return expression.KeyConditionBuilder{}, fmt.Errorf("begins_with on %s requires a string prefix", kc.SortKey)
		}
		return cond.And(expression.Key(kc.SortKey).BeginsWith(prefix)), nil
	}
	return expression.KeyConditionBuilder{}, fmt.Errorf("unsupported sort operator %q", kc.SortOp)
}

func condition(c *ports.Condition) (expression.ConditionBuilder, error) {
	switch c.Op {
	case ports.OpEqual:
		return expression.Name(c.Attribute).Equal(expression.Value(c.Value)), nil
	case ports.OpGreaterThan:
		return expression.Name(c.Attribute).GreaterThan(expression.Value(c.Value)), nil
	case ports.OpBeginsWith:
		prefix, ok := c.Value.(string)
		if !ok {
			return expression.ConditionBuilder{}, fmt.Errorf("begins_with on %s requires a string prefix", c.Attribute)
		}
		return expression.Name(c.Attribute).BeginsWith(prefix), nil
	case ports.OpAttributeExists:
		return expression.AttributeExists(expression.Name(c.Attribute)), nil
	case ports.OpAnd:
		if len(c.Operands) < 2 {
			return expression.ConditionBuilder{}, fmt.Errorf("AND requires at least two operands")
		}
		built := make([]expression.ConditionBuilder, 0, len(c.Operands))
		for _, operand := range c.Operands {
			b, err := condition(operand)
			if err != nil {
				return expression.ConditionBuilder{}, err
			}
			built = append(built, b)
		}
		return expression.And(built[0], built[1], built[2:]...), nil
	}
	return expression.ConditionBuilder{}, fmt.Errorf("unsupported condition operator %q", c.Op)
}

func queryExpression(q ports.Query) (expression.Expression, error) {
	kc, err := keyCondition(q.KeyCondition)
	if err != nil {
		return expression.Expression{}, err
	}

	builder := expression.NewBuilder().WithKeyCondition(kc)
	if q.Filter != nil {
		filter, err := condition(q.Filter)
		if err != nil {
			return expression.Expression{}, err
		}
		builder = builder.WithFilter(filter)
	}

	expr, err := builder.Build()
	if err != nil {
		return expression.Expression{}, fmt.Errorf("failed to build expression: %w", err)
	}
	return expr, nil
}

func updateExpression(u ports.Update) (expression.Expression, error) {
	if len(u.Set) == 0 {
		return expression.Expression{}, fmt.Errorf("update requires at least one attribute")
	}

	names := make([]string, 0, len(u.Set))
	for name := range u.Set {
		names = append(names, name)
	}
	sort.Strings(names)

	var update expression.UpdateBuilder
	for _, name := range names {
		update = update.Set(expression.Name(name), expression.Value(u.Set[name]))
	}

	builder := expression.NewBuilder().WithUpdate(update)
	if u.Condition != nil {
		cond, err := condition(u.Condition)
		if err != nil {
			return expression.Expression{}, err
		}
		builder = builder.WithCondition(cond)
	}

	expr, err := builder.Build()
	if err != nil {
		return expression.Expression{}, fmt.Errorf("failed to build expression: %w", err)
	}
	return expr, nil
}
