package rdf

// Namespaces of the vocabularies the formatter knows about.
const (
	RDFNamespace     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace    = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace     = "http://www.w3.org/2001/XMLSchema#"
	OWLNamespace     = "http://www.w3.org/2002/07/owl#"
	DCTermsNamespace = "http://purl.org/dc/terms/"
	VANNNamespace    = "http://purl.org/vocab/vann/"
	SKOSNamespace    = "http://www.w3.org/2004/02/skos/core#"
	FMTNamespace     = "https://atextor.de/formatting#"
)

// RDF vocabulary.
var (
	RDFType       = IRI{Value: RDFNamespace + "type"}
	RDFFirst      = IRI{Value: RDFNamespace + "first"}
	RDFRest       = IRI{Value: RDFNamespace + "rest"}
	RDFNil        = IRI{Value: RDFNamespace + "nil"}
	RDFList       = IRI{Value: RDFNamespace + "List"}
	RDFProperty   = IRI{Value: RDFNamespace + "Property"}
	RDFLangString = IRI{Value: RDFNamespace + "langString"}
)

// RDFS vocabulary.
var (
	RDFSClass   = IRI{Value: RDFSNamespace + "Class"}
	RDFSLabel   = IRI{Value: RDFSNamespace + "label"}
	RDFSComment = IRI{Value: RDFSNamespace + "comment"}
)

// XSD datatypes.
var (
	XSDString  = IRI{Value: XSDNamespace + "string"}
	XSDBoolean = IRI{Value: XSDNamespace + "boolean"}
	XSDInteger = IRI{Value: XSDNamespace + "integer"}
	XSDDecimal = IRI{Value: XSDNamespace + "decimal"}
	XSDDouble  = IRI{Value: XSDNamespace + "double"}
	XSDDate    = IRI{Value: XSDNamespace + "date"}
)

// OWL vocabulary.
var (
	OWLOntology                  = IRI{Value: OWLNamespace + "Ontology"}
	OWLClass                     = IRI{Value: OWLNamespace + "Class"}
	OWLObjectProperty            = IRI{Value: OWLNamespace + "ObjectProperty"}
	OWLDatatypeProperty          = IRI{Value: OWLNamespace + "DatatypeProperty"}
	OWLAnnotationProperty        = IRI{Value: OWLNamespace + "AnnotationProperty"}
	OWLNamedIndividual           = IRI{Value: OWLNamespace + "NamedIndividual"}
	OWLAllDifferent              = IRI{Value: OWLNamespace + "AllDifferent"}
	OWLAxiom                     = IRI{Value: OWLNamespace + "Axiom"}
	OWLFunctionalProperty        = IRI{Value: OWLNamespace + "FunctionalProperty"}
	OWLInverseFunctionalProperty = IRI{Value: OWLNamespace + "InverseFunctionalProperty"}
	OWLTransitiveProperty        = IRI{Value: OWLNamespace + "TransitiveProperty"}
	OWLSymmetricProperty         = IRI{Value: OWLNamespace + "SymmetricProperty"}
	OWLAsymmetricProperty        = IRI{Value: OWLNamespace + "AsymmetricProperty"}
	OWLReflexiveProperty         = IRI{Value: OWLNamespace + "ReflexiveProperty"}
	OWLIrreflexiveProperty       = IRI{Value: OWLNamespace + "IrreflexiveProperty"}
)

// DCTermsDescription is dcterms:description.
var DCTermsDescription = IRI{Value: DCTermsNamespace + "description"}
