package symbolic

// Op identifies the operation of a composite node.
type Op int

// Supported operations.
const (
	OpCos Op = iota
	OpSin
	OpTan
	OpAcos
	OpAsin
	OpAtan
	OpCosh
	OpSinh
	OpTanh
	OpAcosh
	OpAsinh
	OpAtanh
	OpExp
	OpLog
	OpPow
	OpSqrt
	OpSquare
	OpFloor
	OpRelu
	OpStep
	OpSoftmax
	OpHardTanh
	OpHardTanhDerivative
	OpSigmoid
	OpSigmoidDerivative
	OpSign
	OpSoftsign
	OpSoftsignDerivative
	OpSoftplus
	OpElu
	OpEluDerivative
	OpLeakyRelu
	OpLeakyReluDerivative

	// Arithmetic composites.
	OpNeg
	OpInverse
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPolyTerm

	numOps
)

// OpInfo describes one catalogue entry.
type OpInfo struct {
	Op      Op
	Name    string // name used by String
	Formula string // name used by Formula
	Token   string // execution-graph dispatch token
	Arity   int
	// Params is the number of numeric parameters besides the arguments.
	Params int
	// Differentiable is false for operations whose Diff always fails.
	Differentiable bool
	// HasReal is false for operations whose Real always fails.
	HasReal bool

	noDiff, noReal bool
}

var catalogue = [numOps]OpInfo{
	OpCos:                 {Name: "cos", Arity: 1},
	OpSin:                 {Name: "sin", Arity: 1},
	OpTan:                 {Name: "tan", Arity: 1},
	OpAcos:                {Name: "acos", Arity: 1},
	OpAsin:                {Name: "asin", Arity: 1},
	OpAtan:                {Name: "atan", Arity: 1},
	OpCosh:                {Name: "cosh", Arity: 1},
	OpSinh:                {Name: "sinh", Arity: 1},
	OpTanh:                {Name: "tanh", Arity: 1},
	OpAcosh:               {Name: "acosh", Arity: 1, noReal: true},
	OpAsinh:               {Name: "asinh", Arity: 1, noReal: true},
	OpAtanh:               {Name: "atanh", Arity: 1, noReal: true},
	OpExp:                 {Name: "exp", Arity: 1},
	OpLog:                 {Name: "log", Arity: 1},
	OpPow:                 {Name: "pow", Arity: 2},
	OpSqrt:                {Name: "sqrt", Arity: 1},
	OpSquare:              {Name: "square", Formula: "pow", Token: "pow", Arity: 1},
	OpFloor:               {Name: "floor", Arity: 1, noDiff: true},
	OpRelu:                {Name: "relu", Arity: 1},
	OpStep:                {Name: "step", Arity: 1},
	OpSoftmax:             {Name: "softmax", Arity: 1},
	OpHardTanh:            {Name: "hardtanh", Arity: 1},
	OpHardTanhDerivative:  {Name: "hardtanhDerivative", Token: "hardtanhderivative", Arity: 1},
	OpSigmoid:             {Name: "sigmoid", Arity: 1},
	OpSigmoidDerivative:   {Name: "sigmoidDerivative", Token: "sigmoidderivative", Arity: 1},
	OpSign:                {Name: "sign", Arity: 1},
	OpSoftsign:            {Name: "softsign", Arity: 1},
	OpSoftsignDerivative:  {Name: "softsignDerivative", Token: "softsignderivative", Arity: 1},
	OpSoftplus:            {Name: "softplus", Arity: 1},
	OpElu:                 {Name: "elu", Arity: 1},
	OpEluDerivative:       {Name: "eluDerivative", Formula: "eluderivative", Token: "eluderivative", Arity: 1},
	OpLeakyRelu:           {Name: "leakyrelu", Arity: 1, Params: 1},
	OpLeakyReluDerivative: {Name: "leakyReluDerivative", Token: "leakyreluderivative", Arity: 1, Params: 1},
	OpNeg:                 {Name: "neg", Arity: 1},
	OpInverse:             {Name: "inverse", Arity: 1},
	OpAdd:                 {Name: "add", Arity: 2},
	OpSub:                 {Name: "sub", Arity: 2},
	OpMul:                 {Name: "mul", Arity: 2},
	OpDiv:                 {Name: "div", Arity: 2},
	OpPolyTerm:            {Name: "pow", Token: "pow", Arity: 1, Params: 2},
}

var byName = map[string]Op{}

func init() {
	for i := range catalogue {
		info := &catalogue[i]
		info.Op = Op(i)
		if info.Formula == "" {
			info.Formula = info.Name
		}
		if info.Token == "" {
			info.Token = info.Name
		}
		info.Differentiable = !info.noDiff
		info.HasReal = !info.noReal
		if Op(i) != OpPolyTerm {
			byName[info.Name] = Op(i)
		}
	}
}

// Info returns the catalogue entry of op. An op outside the catalogue is
// named "unknown" and has arity 0.
func (op Op) Info() OpInfo {
	if op < 0 || op >= numOps {
		return OpInfo{Op: op, Name: "unknown", Formula: "unknown", Token: "unknown"}
	}
	return catalogue[op]
}

// String returns the rendering name of op.
func (op Op) String() string {
	return op.Info().Name
}

// Token returns the execution-graph dispatch token of op.
func (op Op) Token() string {
	return op.Info().Token
}

// Lookup returns the operation rendered under name by String.
func Lookup(name string) (Op, bool) {
	op, ok := byName[name]
	return op, ok
}

// Catalogue returns every supported operation in declaration order.
func Catalogue() []OpInfo {
	out := make([]OpInfo, numOps)
	copy(out, catalogue[:])
	return out
}
