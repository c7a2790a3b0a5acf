package ports

// ConditionOp enumerates the comparisons a Condition can express.
type ConditionOp string

const (
	OpEqual           ConditionOp = "="
	OpGreaterThan     ConditionOp = ">"
	OpBeginsWith      ConditionOp = "begins_with"
	OpAttributeExists ConditionOp = "attribute_exists"
	OpAnd             ConditionOp = "AND"
)

// Condition is a small expression tree shared by filter and write
// conditions. Each store implementation compiles or evaluates it.
type Condition struct {
	Op        ConditionOp
	Attribute string
	Value     any
	Operands  []*Condition
}

// Equal matches items whose attribute equals value.
func Equal(attribute string, value any) *Condition {
	return &Condition{Op: OpEqual, Attribute: attribute, Value: value}
}

// GreaterThan matches items whose attribute is strictly greater than value.
func GreaterThan(attribute string, value any) *Condition {
	return &Condition{Op: OpGreaterThan, Attribute: attribute, Value: value}
}

// BeginsWith matches string attributes starting with prefix.
func BeginsWith(attribute, prefix string) *Condition {
	return &Condition{Op: OpBeginsWith, Attribute: attribute, Value: prefix}
}

// AttributeExists matches items carrying attribute.
func AttributeExists(attribute string) *Condition {
	return &Condition{Op: OpAttributeExists, Attribute: attribute}
}

// And joins conditions; nil operands are dropped.
func And(conditions ...*Condition) *Condition {
	var operands []*Condition
	for _, c := range conditions {
		if c != nil {
			operands = append(operands, c)
		}
	}
	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	}
	return &Condition{Op: OpAnd, Operands: operands}
}
