// Package annotate renders the textual pseudo-IR artifact described in
// spec §4.11: two externally-linkable no-op functions,
// PIMProfAnnotationHead and PIMProfAnnotationTail, each tagged with a bblid
// via the PIMProfAnnotationBBLID metadata key. The real collaborator emits
// LLVM bitcode; no LLVM Go binding exists anywhere in the corpus (see
// DESIGN.md), so this package produces a deterministic text rendering that
// stands in for it — enough for the external instrumentor to match
// against by name and bblid.
package annotate

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/pimprof/solver"
)

// MetadataKey names the metadata node every annotation function's return
// instruction carries (spec §4.11).
const MetadataKey = "PIMProfAnnotationBBLID"

// attributes mirrors the function attribute set spec §4.11 requires on
// both annotation functions.
var attributes = []string{"NoInline", "NoUnwind", "OptimizeNone", "UWTable"}

const funcTemplate = `define i64 @{{.Name}}(i64 %a, i64 %b, i64 %c) #0 {
entry:
  %slot = alloca i64, i64, i64
  store i64 %a, i64* %slot
  store i64 %b, i64* %slot
  store i64 %c, i64* %slot
  ret i64 %a, !{{.MetadataKey}} !{ {{.BblId}} }
}
`

var tmpl = template.Must(template.New("annotation").Parse(funcTemplate))

// Module is one bblid's worth of head/tail annotation functions.
type Module struct {
	BblId solver.BblId
}

type funcData struct {
	Name        string
	MetadataKey string
	BblId       solver.BblId
}

// EmitHead renders the PIMProfAnnotationHead function for this module's bblid.
func (m Module) EmitHead() (string, error) {
	return render("PIMProfAnnotationHead", m.BblId)
}

// EmitTail renders the PIMProfAnnotationTail function for this module's bblid.
func (m Module) EmitTail() (string, error) {
	return render("PIMProfAnnotationTail", m.BblId)
}

func render(name string, id solver.BblId) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, funcData{Name: name, MetadataKey: MetadataKey, BblId: id}); err != nil {
		return "", fmt.Errorf("annotate: render %s: %w", name, err)
	}
	return b.String(), nil
}

// String renders the full module: an attribute-group declaration followed
// by both annotation functions, in deterministic order (head then tail).
func (m Module) String() string {
	head, err := m.EmitHead()
	if err != nil {
		head = fmt.Sprintf("; error: %v\n", err)
	}
	tail, err := m.EmitTail()
	if err != nil {
		tail = fmt.Sprintf("; error: %v\n", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "attributes #0 = { %s }\n\n", strings.Join(attributes, " "))
	b.WriteString(head)
	b.WriteString("\n")
	b.WriteString(tail)
	return b.String()
}
