package shacl

// Namespace is the base IRI prefix for SHACL vocabulary terms.
const Namespace = "http://www.w3.org/ns/shacl#"

// Class IRIs for report structure.
const (
	// ClassValidationReport is the type of the top-level report node.
	ClassValidationReport = Namespace + "ValidationReport"

	// ClassValidationResult is the type of each per-finding result node.
	ClassValidationResult = Namespace + "ValidationResult"
)

// Report property IRIs.
const (
	// Conforms carries the top-level boolean conformance flag. The
	// report parser locates the report node by this predicate.
	Conforms = Namespace + "conforms"

	// Result links the report node to each validation result node.
	Result = Namespace + "result"

	// FocusNode identifies the node that was being validated.
	FocusNode = Namespace + "focusNode"

	// ResultPath identifies the property path the result concerns.
	ResultPath = Namespace + "resultPath"

	// Value is the specific value that failed the constraint.
	Value = Namespace + "value"

	// ResultMessage is the human-readable finding description.
	ResultMessage = Namespace + "resultMessage"

	// ResultSeverity is one of the three severity IRIs below.
	ResultSeverity = Namespace + "resultSeverity"

	// SourceShape identifies the shape that produced the result.
	SourceShape = Namespace + "sourceShape"

	// SourceConstraintComponent identifies the constraint family that
	// produced the result.
	SourceConstraintComponent = Namespace + "sourceConstraintComponent"
)

// Severity IRIs. Any unrecognized severity IRI encountered during report
// parsing is treated as SeverityViolation, the conservative default.
const (
	SeverityViolation = Namespace + "Violation"
	SeverityWarning   = Namespace + "Warning"
	SeverityInfo      = Namespace + "Info"
)

// Constraint component IRIs stamped onto violations by the validator
// families.
const (
	DatatypeConstraintComponent          = Namespace + "DatatypeConstraintComponent"
	ClassConstraintComponent             = Namespace + "ClassConstraintComponent"
	NodeKindConstraintComponent          = Namespace + "NodeKindConstraintComponent"
	PatternConstraintComponent           = Namespace + "PatternConstraintComponent"
	MinLengthConstraintComponent         = Namespace + "MinLengthConstraintComponent"
	MaxLengthConstraintComponent         = Namespace + "MaxLengthConstraintComponent"
	LanguageInConstraintComponent        = Namespace + "LanguageInConstraintComponent"
	InConstraintComponent                = Namespace + "InConstraintComponent"
	HasValueConstraintComponent          = Namespace + "HasValueConstraintComponent"
	MinInclusiveConstraintComponent      = Namespace + "MinInclusiveConstraintComponent"
	MaxInclusiveConstraintComponent      = Namespace + "MaxInclusiveConstraintComponent"
	MinExclusiveConstraintComponent      = Namespace + "MinExclusiveConstraintComponent"
	MaxExclusiveConstraintComponent      = Namespace + "MaxExclusiveConstraintComponent"
	QualifiedMinCountConstraintComponent = Namespace + "QualifiedMinCountConstraintComponent"
	SPARQLConstraintComponent            = Namespace + "SPARQLConstraintComponent"
)

// Node kind IRIs for sh:nodeKind checks.
const (
	NodeKindIRI          = Namespace + "IRI"
	NodeKindBlankNode    = Namespace + "BlankNode"
	NodeKindLiteral      = Namespace + "Literal"
)
