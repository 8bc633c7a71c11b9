// Package lexer implements spec.md §4.2: a single pass over a
// source.CharStream producing an ordered sequence of TokenInfo records.
package lexer

// TokenType is the closed token enum described in spec.md §3. Following
// the range-partitioning convention this front end's teacher used to keep
// SQL-dialect tokens non-colliding (sqlparser/sqldocument/tokens.go
// reserves 1-999/1000-1999/2000-2999 per dialect), every operator/keyword
// family here occupies its own contiguous sub-range, each with a
// documented ...Start/...End pair declared below the raw enum. That makes
// "is this an assignment operator" / "is this a binary operator" / "is
// this a unary operator" / "is this a type keyword" a single range
// comparison instead of a set membership test -- a hard constraint from
// spec.md §3.
//
// The raw enum below is a single uninterrupted iota sequence: every
// family's member tokens are listed back to back, in the order the Start/
// End constants further down promise, and nothing in between them ever
// reassigns the iota expression (doing so would silently break every
// subsequent token's value, since an elided const expression repeats the
// previous spec's expression verbatim).
type TokenType int

const (
	EOS TokenType = iota

	// Punctuators.
	lparenToken
	rparenToken
	lbracketToken
	rbracketToken
	lbraceToken
	rbraceToken
	semicolonToken
	commaPunctToken
	colonToken
	questionToken
	dotToken
	fatArrowToken // =>
	arrowToken    // ->

	// Assignment operators, contiguous (spec.md §3).
	assignToken // =
	orAssignToken
	xorAssignToken
	andAssignToken
	shlAssignToken
	shrAssignToken
	ushrAssignToken
	addAssignToken
	subAssignToken
	mulAssignToken
	divAssignToken
	modAssignToken

	// Binary operators, in precedence order (spec.md §3).
	commaOpToken // precedence 1: comma operator
	orToken      // || precedence 4
	andToken     // && precedence 5
	eqToken      // == precedence 6
	neToken      // != precedence 6
	ltToken      // < precedence 7
	gtToken      // > precedence 7
	leToken      // <= precedence 7
	geToken      // >= precedence 7
	bitOrToken   // | precedence 8
	bitXorToken  // ^ precedence 9
	bitAndToken  // & precedence 10
	shlToken     // << precedence 11
	shrToken     // >> precedence 11
	ushrToken    // >>> precedence 11
	plusToken    // + precedence 12
	minusToken   // - precedence 12
	starToken    // * precedence 13
	slashToken   // / precedence 13
	percentToken // % precedence 13
	powToken     // ** precedence 14

	// Unary operators.
	notToken // !
	bitNotToken
	incToken
	decToken
	deleteToken

	// Keywords: required ones first, then Solidity reserved words
	// recognized but not produced by the grammar in §4.3.
	contractToken
	functionToken
	ifToken
	elseToken
	forToken
	whileToken
	doToken
	returnToken
	returnsToken
	breakToken
	continueToken
	structToken
	trueToken
	falseToken
	publicToken
	privateToken
	internalToken
	externalToken
	viewToken
	pureToken
	payableToken
	memoryToken
	storageOrCalldataToken // storage / calldata
	constantToken
	immutableToken
	emitToken
	eventToken
	modifierToken
	overrideToken
	virtualToken
	abstractToken
	interfaceToken
	libraryToken
	enumToken
	mappingToken
	importToken
	pragmaToken
	usingToken
	isToken
	newToken
	requireToken
	assertToken
	revertToken

	// Elementary type keywords (spec.md §3).
	intToken
	uintToken
	int8Token
	int16Token
	int32Token
	int64Token
	int128Token
	int256Token
	uint8Token
	uint16Token
	uint32Token
	uint64Token
	uint128Token
	uint256Token
	boolToken
	floatToken
	doubleToken
	stringTypeToken
	voidToken
	addressToken // elementary type, recognized but unused by emitted semantics
	bytesToken

	// Literal kinds.
	intNumberToken
	doubleNumberToken
	stringLitToken
	identifierToken

	// Illegal token (lex error recovery marker).
	illegalToken

	// Internal-only token kinds: never appear in the stream handed to the
	// parser, used solely inside the lexer's own scanning loop.
	internalWhitespace
	internalComment
)

// Exported names and range markers. Declaring these in a second block
// (rather than interleaving `Foo = fooToken` aliases into the iota
// sequence above) is deliberate: it is the only way to both keep the raw
// enum's iota increment unbroken and expose PascalCase names/ranges to
// other packages.
const (
	PunctuatorStart = lparenToken
	LParenToken     = lparenToken
	RParenToken     = rparenToken
	LBracketToken   = lbracketToken
	RBracketToken   = rbracketToken
	LBraceToken     = lbraceToken
	RBraceToken     = rbraceToken
	SemicolonToken  = semicolonToken
	CommaPunctToken = commaPunctToken
	ColonToken      = colonToken
	QuestionToken   = questionToken
	DotToken        = dotToken
	FatArrowToken   = fatArrowToken
	ArrowToken      = arrowToken
	PunctuatorEnd   = arrowToken

	AssignStart     = assignToken
	AssignToken     = assignToken
	OrAssignToken   = orAssignToken
	XorAssignToken  = xorAssignToken
	AndAssignToken  = andAssignToken
	ShlAssignToken  = shlAssignToken
	ShrAssignToken  = shrAssignToken
	UShrAssignToken = ushrAssignToken
	AddAssignToken  = addAssignToken
	SubAssignToken  = subAssignToken
	MulAssignToken  = mulAssignToken
	DivAssignToken  = divAssignToken
	ModAssignToken  = modAssignToken
	AssignEnd       = modAssignToken

	BinaryStart  = commaOpToken
	CommaOpToken = commaOpToken
	OrToken      = orToken
	AndToken     = andToken
	EqToken      = eqToken
	NeToken      = neToken
	LtToken      = ltToken
	GtToken      = gtToken
	LeToken      = leToken
	GeToken      = geToken
	BitOrToken   = bitOrToken
	BitXorToken  = bitXorToken
	BitAndToken  = bitAndToken
	ShlToken     = shlToken
	ShrToken     = shrToken
	UShrToken    = ushrToken
	PlusToken    = plusToken
	MinusToken   = minusToken
	StarToken    = starToken
	SlashToken   = slashToken
	PercentToken = percentToken
	PowToken     = powToken
	BinaryEnd    = powToken

	UnaryStart  = notToken
	NotToken    = notToken
	BitNotToken = bitNotToken
	IncToken    = incToken
	DecToken    = decToken
	DeleteToken = deleteToken
	UnaryEnd    = deleteToken

	KeywordStart           = contractToken
	ContractToken          = contractToken
	FunctionToken          = functionToken
	IfToken                = ifToken
	ElseToken              = elseToken
	ForToken               = forToken
	WhileToken             = whileToken
	DoToken                = doToken
	ReturnToken            = returnToken
	ReturnsToken           = returnsToken
	BreakToken             = breakToken
	ContinueToken          = continueToken
	StructToken            = structToken
	TrueToken              = trueToken
	FalseToken             = falseToken
	PublicToken            = publicToken
	PrivateToken           = privateToken
	InternalToken          = internalToken
	ExternalToken          = externalToken
	ViewToken              = viewToken
	PureToken              = pureToken
	PayableToken           = payableToken
	MemoryToken            = memoryToken
	StorageOrCalldataToken = storageOrCalldataToken
	ConstantToken          = constantToken
	ImmutableToken         = immutableToken
	EmitToken              = emitToken
	EventToken             = eventToken
	ModifierToken          = modifierToken
	OverrideToken          = overrideToken
	VirtualToken           = virtualToken
	AbstractToken          = abstractToken
	InterfaceToken         = interfaceToken
	LibraryToken           = libraryToken
	EnumToken              = enumToken
	MappingToken           = mappingToken
	ImportToken            = importToken
	PragmaToken            = pragmaToken
	UsingToken             = usingToken
	IsToken                = isToken
	NewToken               = newToken
	RequireToken           = requireToken
	AssertToken            = assertToken
	RevertToken            = revertToken
	KeywordEnd             = revertToken

	TypeStart       = intToken
	IntToken        = intToken
	UintToken       = uintToken
	Int8Token       = int8Token
	Int16Token      = int16Token
	Int32Token      = int32Token
	Int64Token      = int64Token
	Int128Token     = int128Token
	Int256Token     = int256Token
	Uint8Token      = uint8Token
	Uint16Token     = uint16Token
	Uint32Token     = uint32Token
	Uint64Token     = uint64Token
	Uint128Token    = uint128Token
	Uint256Token    = uint256Token
	BoolToken       = boolToken
	FloatToken      = floatToken
	DoubleToken     = doubleToken
	StringTypeToken = stringTypeToken
	VoidToken       = voidToken
	AddressToken    = addressToken
	BytesToken      = bytesToken
	TypeEnd         = bytesToken

	LiteralStart = intNumberToken
	IntNumber    = intNumberToken
	DoubleNumber = doubleNumberToken
	StringLit    = stringLitToken
	Identifier   = identifierToken
	LiteralEnd   = identifierToken

	Illegal = illegalToken
)

// IsAssignOp reports whether t is one of the contiguous assignment-operator
// tokens.
func (t TokenType) IsAssignOp() bool { return t >= AssignStart && t <= AssignEnd }

// IsBinaryOp reports whether t is one of the contiguous binary-operator
// tokens.
func (t TokenType) IsBinaryOp() bool { return t >= BinaryStart && t <= BinaryEnd }

// IsUnaryOp reports whether t is one of the contiguous unary-operator
// tokens.
func (t TokenType) IsUnaryOp() bool { return t >= UnaryStart && t <= UnaryEnd }

// IsKeyword reports whether t is one of the contiguous keyword tokens
// (required or merely reserved).
func (t TokenType) IsKeyword() bool { return t >= KeywordStart && t <= KeywordEnd }

// IsTypeKeyword reports whether t is one of the contiguous elementary
// type-name tokens.
func (t TokenType) IsTypeKeyword() bool { return t >= TypeStart && t <= TypeEnd }

// IsExplicitWidthInt reports whether t is one of the intM/uintM tokens.
func (t TokenType) IsExplicitWidthInt() bool {
	return t >= Int8Token && t <= Uint256Token
}

// keywordTable maps every recognized lexeme to its keyword/type TokenType;
// anything absent from this table that otherwise matches an identifier
// pattern becomes Identifier.
var keywordTable = map[string]TokenType{
	"contract": ContractToken,
	"function": FunctionToken,
	"if":       IfToken,
	"else":     ElseToken,
	"for":      ForToken,
	"while":    WhileToken,
	"do":       DoToken,
	"return":   ReturnToken,
	"returns":  ReturnsToken,
	"break":    BreakToken,
	"continue": ContinueToken,
	"struct":   StructToken,
	"true":     TrueToken,
	"false":    FalseToken,
	"delete":   DeleteToken,

	"public":    PublicToken,
	"private":   PrivateToken,
	"internal":  InternalToken,
	"external":  ExternalToken,
	"view":      ViewToken,
	"pure":      PureToken,
	"payable":   PayableToken,
	"memory":    MemoryToken,
	"storage":   StorageOrCalldataToken,
	"calldata":  StorageOrCalldataToken,
	"constant":  ConstantToken,
	"immutable": ImmutableToken,
	"emit":      EmitToken,
	"event":     EventToken,
	"modifier":  ModifierToken,
	"override":  OverrideToken,
	"virtual":   VirtualToken,
	"abstract":  AbstractToken,
	"interface": InterfaceToken,
	"library":   LibraryToken,
	"enum":      EnumToken,
	"mapping":   MappingToken,
	"import":    ImportToken,
	"pragma":    PragmaToken,
	"using":     UsingToken,
	"is":        IsToken,
	"new":       NewToken,
	"require":   RequireToken,
	"assert":    AssertToken,
	"revert":    RevertToken,

	"int":     IntToken,
	"uint":    UintToken,
	"int8":    Int8Token,
	"int16":   Int16Token,
	"int32":   Int32Token,
	"int64":   Int64Token,
	"int128":  Int128Token,
	"int256":  Int256Token,
	"uint8":   Uint8Token,
	"uint16":  Uint16Token,
	"uint32":  Uint32Token,
	"uint64":  Uint64Token,
	"uint128": Uint128Token,
	"uint256": Uint256Token,
	"bool":    BoolToken,
	"float":   FloatToken,
	"double":  DoubleToken,
	"string":  StringTypeToken,
	"void":    VoidToken,
	"address": AddressToken,
	"bytes":   BytesToken,
}

// precedenceTable gives the binary operator precedence derivable from a
// TokenType, per the constant table spec.md §3 promises.
var precedenceTable = map[TokenType]int{
	CommaOpToken: 1,
	OrToken:      4,
	AndToken:     5,
	EqToken:      6,
	NeToken:      6,
	LtToken:      7,
	GtToken:      7,
	LeToken:      7,
	GeToken:      7,
	BitOrToken:   8,
	BitXorToken:  9,
	BitAndToken:  10,
	ShlToken:     11,
	ShrToken:     11,
	UShrToken:    11,
	PlusToken:    12,
	MinusToken:   12,
	StarToken:    13,
	SlashToken:   13,
	PercentToken: 13,
	PowToken:     14,
}

// Precedence returns t's binary operator precedence, or 0 if t is not a
// binary operator.
func (t TokenType) Precedence() int {
	return precedenceTable[t]
}

var tokenNames = map[TokenType]string{
	EOS: "EOS",

	LParenToken: "(", RParenToken: ")", LBracketToken: "[", RBracketToken: "]",
	LBraceToken: "{", RBraceToken: "}", SemicolonToken: ";", CommaPunctToken: ",",
	ColonToken: ":", QuestionToken: "?", DotToken: ".", FatArrowToken: "=>", ArrowToken: "->",

	AssignToken: "=", OrAssignToken: "|=", XorAssignToken: "^=", AndAssignToken: "&=",
	ShlAssignToken: "<<=", ShrAssignToken: ">>=", UShrAssignToken: ">>>=",
	AddAssignToken: "+=", SubAssignToken: "-=", MulAssignToken: "*=", DivAssignToken: "/=", ModAssignToken: "%=",

	CommaOpToken: ",", OrToken: "||", AndToken: "&&", EqToken: "==", NeToken: "!=",
	LtToken: "<", GtToken: ">", LeToken: "<=", GeToken: ">=",
	BitOrToken: "|", BitXorToken: "^", BitAndToken: "&",
	ShlToken: "<<", ShrToken: ">>", UShrToken: ">>>",
	PlusToken: "+", MinusToken: "-", StarToken: "*", SlashToken: "/", PercentToken: "%", PowToken: "**",

	NotToken: "!", BitNotToken: "~", IncToken: "++", DecToken: "--", DeleteToken: "delete",

	IntNumber: "int-number", DoubleNumber: "double-number", StringLit: "string", Identifier: "identifier",
	Illegal: "illegal",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	for lexeme, tt := range keywordTable {
		if tt == t {
			return lexeme
		}
	}
	return "token"
}
