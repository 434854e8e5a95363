package code

// Namespace is the base IRI prefix for code-analysis vocabulary terms.
const Namespace = "https://semshapes.dev/ontology/code/"

// EntityNamespace is the base IRI for extracted code entity instances.
const EntityNamespace = "https://semshapes.dev/entity/code/"

// Class IRIs define the types of extracted code entities.
const (
	// ClassModule represents a source module or file.
	ClassModule = Namespace + "Module"

	// ClassFunction represents a named function or method.
	ClassFunction = Namespace + "Function"

	// ClassProcessAbstraction represents a long-lived concurrent worker
	// (an actor, server process, or goroutine-owning component).
	ClassProcessAbstraction = Namespace + "ProcessAbstraction"

	// ClassSupervisionTree represents a supervisor that owns and
	// restarts child processes.
	ClassSupervisionTree = Namespace + "SupervisionTree"

	// ClassTable represents an in-memory or persistent table definition.
	ClassTable = Namespace + "Table"
)

// Data property IRIs define literal-valued attributes of code entities.
const (
	// PropName is the entity's declared identifier.
	PropName = Namespace + "name"

	// PropPath is the file path relative to the repository root.
	PropPath = Namespace + "path"

	// PropLanguage is the source language ("go", "python", ...).
	PropLanguage = Namespace + "language"

	// PropStartLine is the 1-based first line of the entity.
	PropStartLine = Namespace + "startLine"

	// PropEndLine is the 1-based last line of the entity.
	PropEndLine = Namespace + "endLine"

	// PropArity is the number of declared parameters.
	PropArity = Namespace + "arity"

	// PropExported records whether the identifier is exported.
	PropExported = Namespace + "exported"

	// PropDocComment is the entity's documentation comment.
	PropDocComment = Namespace + "docComment"

	// PropHash is the content hash used for change detection.
	PropHash = Namespace + "hash"
)

// Object property IRIs define relationships between code entities.
const (
	// PropDefinedIn links an entity to the module that declares it.
	PropDefinedIn = Namespace + "definedIn"

	// PropSupervises links a supervision tree to a supervised process.
	PropSupervises = Namespace + "supervises"

	// PropOwnsTable links a process abstraction to a table it owns.
	PropOwnsTable = Namespace + "ownsTable"
)
