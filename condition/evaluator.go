package condition

// PrimitiveFunc maps a Context to a three-valued verdict for one
// primitive condition number.
type PrimitiveFunc func(ctx Context) Tri

// Evaluator is the contract a concrete, code-generated-from-AHB-XML
// evaluator implements (spec §6 "ConditionEvaluator"). The condition
// numbers it knows about are specific to one message type and format
// version; callers outside this package generate or hand-assemble the
// concrete instance, this package only defines the shape and a simple
// map-backed implementation useful for tests and static primitive sets.
type Evaluator interface {
	Evaluate(conditionNumber int, ctx Context) Tri
	IsExternal(conditionNumber int) bool
	MessageType() string
	FormatVersion() string
}

// registryEvaluator is a straightforward Evaluator backed by a map of
// primitive functions plus a set of condition numbers delegated to an
// external provider. It is the idiomatic "simple case" implementation,
// the way the teacher's validate package ships MSHRules/PIDRules as
// ready-made RuleSets alongside the general Rule/Validator interfaces.
type registryEvaluator struct {
	messageType    string
	formatVersion  string
	primitives     map[int]PrimitiveFunc
	external       map[int]bool
	externalSource ExternalConditionProvider
}

// NewEvaluator creates an empty Evaluator for messageType/formatVersion.
// Register primitive condition functions with RegisterPrimitive and
// externally-delegated condition numbers with RegisterExternal.
func NewEvaluator(messageType, formatVersion string) *registryEvaluator {
	return &registryEvaluator{
		messageType:   messageType,
		formatVersion: formatVersion,
		primitives:    make(map[int]PrimitiveFunc),
		external:      make(map[int]bool),
	}
}

// RegisterPrimitive attaches the function that decides condition number
// n against a Context.
func (e *registryEvaluator) RegisterPrimitive(n int, fn PrimitiveFunc) {
	e.primitives[n] = fn
}

// RegisterExternal marks condition number n as depending on data the
// message cannot answer; Evaluate delegates it to the Context's
// ExternalConditionProvider.
func (e *registryEvaluator) RegisterExternal(n int) {
	e.external[n] = true
}

func (e *registryEvaluator) Evaluate(n int, ctx Context) Tri {
	if e.external[n] {
		if ext := ctx.External(); ext != nil {
			return ext.Evaluate(n, ctx)
		}
		return Unknown
	}
	fn, ok := e.primitives[n]
	if !ok {
		return Unknown
	}
	return fn(ctx)
}

func (e *registryEvaluator) IsExternal(n int) bool     { return e.external[n] }
func (e *registryEvaluator) MessageType() string       { return e.messageType }
func (e *registryEvaluator) FormatVersion() string     { return e.formatVersion }

// MapEvaluator is a fixed-value Evaluator useful for tests: condition
// number n always evaluates to values[n], defaulting to Unknown for any
// number not present in the map.
type MapEvaluator struct {
	Values        map[int]Tri
	MsgType       string
	FmtVersion    string
}

// NewMapEvaluator creates a MapEvaluator from a fixed verdict table, per
// the scenarios of spec §8 ("Evaluator registered with {182: True, 152:
// True}").
func NewMapEvaluator(values map[int]Tri) *MapEvaluator {
	return &MapEvaluator{Values: values}
}

func (e *MapEvaluator) Evaluate(n int, _ Context) Tri {
	if v, ok := e.Values[n]; ok {
		return v
	}
	return Unknown
}

func (e *MapEvaluator) IsExternal(int) bool     { return false }
func (e *MapEvaluator) MessageType() string     { return e.MsgType }
func (e *MapEvaluator) FormatVersion() string   { return e.FmtVersion }
