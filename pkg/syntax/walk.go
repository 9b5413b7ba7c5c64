package syntax

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(stmt Statement) error

// Walk performs a pre-order traversal of statements and their element bodies.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(statements []Statement, walkFunc WalkFunc) error {
	for _, stmt := range statements {
		if err := walkFunc(stmt); err != nil {
			return err
		}
		if el, ok := stmt.(*Element); ok {
			if err := Walk(el.Body, walkFunc); err != nil {
				return err
			}
		}
	}
	return nil
}

// StyleWalkFunc is the function signature for WalkStyle callbacks.
type StyleWalkFunc func(stmt StyleStatement) error

// WalkStyle performs a pre-order traversal of a style body.
func WalkStyle(body []StyleStatement, walkFunc StyleWalkFunc) error {
	for _, stmt := range body {
		if err := walkFunc(stmt); err != nil {
			return err
		}
		if block, ok := stmt.(*StyleBlock); ok {
			if err := WalkStyle(block.Body, walkFunc); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValueWalkFunc is the function signature for WalkValue callbacks.
type ValueWalkFunc func(v Value) error

// WalkValue visits v and every nested value: array items, tuple items and
// function arguments.
func WalkValue(v Value, walkFunc ValueWalkFunc) error {
	if v == nil {
		return nil
	}
	if err := walkFunc(v); err != nil {
		return err
	}

	var children []Value
	switch val := v.(type) {
	case *Array:
		children = val.Values
	case *Tuple:
		children = val.Values
	case *Function:
		children = val.Args.Values()
	}
	for _, child := range children {
		if err := WalkValue(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}
