package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/turtlefmt/rdf"
)

func TestGoldenOutputs(t *testing.T) {
	tests := []struct {
		name   string
		format rdf.Format
		input  string
	}{
		{
			name:   "ontology",
			format: rdf.FormatTurtle,
			input: lines(
				"@prefix : <http://example.com/> .",
				"@prefix owl: <http://www.w3.org/2002/07/owl#> .",
				"@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .",
				`:name a owl:DatatypeProperty ; rdfs:label "name" ; rdfs:domain :Person .`,
				`:Person a owl:Class ; rdfs:label "Person"@en , "Person"@de ; rdfs:comment "A human" .`,
				`:Max a :Person , owl:NamedIndividual ; :name "Max" .`,
				":Ontology a owl:Ontology ."),
		},
		{
			name:   "collections",
			format: rdf.FormatTurtle,
			input: lines(
				"@prefix : <http://example.com/> .",
				":s :q [ :t ( 1 2 ) ; :r 1 ] ; :p ( :a :b ) ."),
		},
		{
			name:   "jsonld",
			format: rdf.FormatJSONLD,
			input:  `{"@context": {"ex": "http://example.com/ns#"}, "@id": "ex:s", "ex:p": [{"@value": "v", "@language": "en"}, {"@id": "ex:o"}]}`,
		},
	}
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	f := mustNew(t, DefaultStyle())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, f.FormatReader(t.Context(), strings.NewReader(tt.input), &buf, tt.format))
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}
