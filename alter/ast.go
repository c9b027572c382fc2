package alter

import (
	"strconv"
	"strings"
)

// Statement is a single ALTER phrase. Statements are immutable values.
// The set of statement types is closed:
//
//     SetVarDependency     ENSURE columns (IN)DEPENDENT
//     SetVarCluster        SET columns WITHIN CLUSTER OF VARIABLE … / IN SINGLETON CLUSTER
//     SetVarClusterConc    SET VARIABLE CLUSTER CONCENTRATION PARAMETER TO …
//     SetRowCluster        SET rows WITHIN CLUSTER OF ROW … / IN SINGLETON CLUSTER, with context
//     SetRowClusterConc    SET ROW CLUSTER CONCENTRATION PARAMETER FOR VARIABLE … TO …
//
// String renders a statement as canonical ALTER text. The text parses back to
// an equal statement, unless a name is a reserved word or contains a double
// quote. Such names cannot be written in ALTER at all.
type Statement interface {
	String() string
	statement()
}

// SetVarDependency forces variables to be modeled dependent or independent.
type SetVarDependency struct {
	Columns    ColumnSet
	Dependency Dependency
}

// SetVarCluster moves variables into the cluster of another variable, or into
// a new singleton cluster.
type SetVarCluster struct {
	Columns0 ColumnSet
	Column1  ColumnTarget // ColumnRef or Singleton
}

// SetVarClusterConc sets the concentration parameter of variable clustering.
type SetVarClusterConc struct {
	Concentration Number
}

// SetRowCluster moves rows into the cluster of another row, or into a new
// singleton cluster, within the view of a context variable.
type SetRowCluster struct {
	Rows0  RowSet
	Row1   RowTarget // RowRef or Singleton
	Column ColumnRef // context variable
}

// SetRowClusterConc sets the concentration parameter of row clustering for a
// context variable.
type SetRowClusterConc struct {
	Column        ColumnRef
	Concentration Number
}

func (SetVarDependency) statement()  {}
func (SetVarCluster) statement()     {}
func (SetVarClusterConc) statement() {}
func (SetRowCluster) statement()     {}
func (SetRowClusterConc) statement() {}

func (s SetVarDependency) String() string {
	return "ENSURE " + s.Columns.String() + " " + s.Dependency.String()
}

func (s SetVarCluster) String() string {
	if s.Column1 == Singleton {
		return "SET " + s.Columns0.String() + " IN SINGLETON CLUSTER"
	}
	return "SET " + s.Columns0.String() + " WITHIN CLUSTER OF VARIABLE " + s.Column1.String()
}

func (s SetVarClusterConc) String() string {
	return "SET VARIABLE CLUSTER CONCENTRATION PARAMETER TO " + s.Concentration.String()
}

func (s SetRowCluster) String() string {
	ctx := " CONTEXT VARIABLE " + s.Column.String()
	if s.Row1 == Singleton {
		return "SET " + s.Rows0.String() + " IN SINGLETON CLUSTER" + ctx
	}
	return "SET " + s.Rows0.String() + " WITHIN CLUSTER OF ROW " + s.Row1.String() + ctx
}

func (s SetRowClusterConc) String() string {
	return "SET ROW CLUSTER CONCENTRATION PARAMETER FOR VARIABLE " + s.Column.String() +
		" TO " + s.Concentration.String()
}

// --- Dependency ------------------------------------------------------------

// Dependency is the target of an ENSURE statement.
type Dependency int8

// Dependencies
const (
	Independent Dependency = iota
	Dependent
)

func (d Dependency) String() string {
	if d == Dependent {
		return "DEPENDENT"
	}
	return "INDEPENDENT"
}

// --- References ------------------------------------------------------------

// ColumnTarget is either a ColumnRef or Singleton.
type ColumnTarget interface {
	String() string
	columnTarget()
}

// RowTarget is either a RowRef or Singleton.
type RowTarget interface {
	String() string
	rowTarget()
}

// SingletonCluster is the type of Singleton.
type SingletonCluster struct{}

// Singleton denotes a new cluster, holding nothing but the elements moved.
var Singleton = SingletonCluster{}

func (SingletonCluster) columnTarget() {}
func (SingletonCluster) rowTarget()    {}

func (SingletonCluster) String() string {
	return "SINGLETON"
}

// ColumnRef names a variable. Variable names are not validated; names which
// are not identifiers are quoted by String, but no escaping takes place.
type ColumnRef string

func (ColumnRef) columnTarget() {}

func (c ColumnRef) String() string {
	return quoteName(string(c))
}

// RowRef refers to a row, either by name or by index.
type RowRef struct {
	name  string
	index Number
	named bool
}

// RowName creates a reference to a row by name.
func RowName(name string) RowRef {
	return RowRef{name: name, named: true}
}

// RowNumber creates a reference to a row by index.
func RowNumber(n Number) RowRef {
	return RowRef{index: n}
}

func (RowRef) rowTarget() {}

// Name returns the name of a row, if it is referenced by name.
func (r RowRef) Name() (string, bool) {
	return r.name, r.named
}

// Index returns the index of a row, if it is referenced by index.
func (r RowRef) Index() (Number, bool) {
	return r.index, !r.named
}

func (r RowRef) String() string {
	if r.named {
		return quoteName(r.name)
	}
	return r.index.String()
}

// --- Sets ------------------------------------------------------------------

// ColumnSet is either all variables (`*`) or a list of variables. Order and
// duplicates of the list are kept as written.
type ColumnSet struct {
	All   bool
	Names []ColumnRef
}

// AllColumns is the column set `*`.
func AllColumns() ColumnSet {
	return ColumnSet{All: true}
}

// Columns creates a column set from a list of names.
func Columns(names ...string) ColumnSet {
	refs := make([]ColumnRef, len(names))
	for i, n := range names {
		refs[i] = ColumnRef(n)
	}
	return ColumnSet{Names: refs}
}

func (cs ColumnSet) String() string {
	if cs.All {
		return "*"
	}
	if len(cs.Names) == 1 {
		return cs.Names[0].String()
	}
	s := make([]string, len(cs.Names))
	for i, n := range cs.Names {
		s[i] = n.String()
	}
	return "(" + strings.Join(s, ", ") + ")"
}

// RowSet is either all rows (`*`) or a list of rows. Order and duplicates of
// the list are kept as written.
type RowSet struct {
	All  bool
	Rows []RowRef
}

// AllRows is the row set `*`.
func AllRows() RowSet {
	return RowSet{All: true}
}

// Rows creates a row set from a list of row references.
func Rows(rows ...RowRef) RowSet {
	return RowSet{Rows: rows}
}

func (rs RowSet) String() string {
	if rs.All {
		return "*"
	}
	if len(rs.Rows) == 1 {
		return rs.Rows[0].String()
	}
	s := make([]string, len(rs.Rows))
	for i, r := range rs.Rows {
		s[i] = r.String()
	}
	return "(" + strings.Join(s, ", ") + ")"
}

// --- Numbers ---------------------------------------------------------------

// Number is a numeric literal, either integral or real.
type Number struct {
	i    int64
	f    float64
	real bool
}

// IntNumber creates an integral number.
func IntNumber(i int64) Number {
	return Number{i: i}
}

// RealNumber creates a real number.
func RealNumber(f float64) Number {
	return Number{f: f, real: true}
}

// IsInt is true for integral numbers.
func (n Number) IsInt() bool {
	return !n.real
}

// Int64 returns n as an integer. Real numbers are truncated.
func (n Number) Int64() int64 {
	if n.real {
		return int64(n.f)
	}
	return n.i
}

// Float64 returns n as a float.
func (n Number) Float64() float64 {
	if n.real {
		return n.f
	}
	return float64(n.i)
}

// String formats integral numbers without and real numbers with a decimal
// point or exponent.
func (n Number) String() string {
	if !n.real {
		return strconv.FormatInt(n.i, 10)
	}
	s := strconv.FormatFloat(n.f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

// --- Helpers ---------------------------------------------------------------

// quoteName puts double quotes around names which are not identifiers.
func quoteName(name string) string {
	if isPlainName(name) {
		return name
	}
	return `"` + name + `"`
}

func isPlainName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || i > 0 && '0' <= r && r <= '9' {
			continue
		}
		return false
	}
	return true
}
