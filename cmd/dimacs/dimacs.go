package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Dimacs holds the variables and clauses of a CNF problem described
// in DIMACS format.
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
type Dimacs struct {
	variables []string
	clauses   [][]int
	names     map[int]string
}

// Variables returns the variable numbers as strings, from 1 to the
// number declared in the header.
func (d *Dimacs) Variables() []string {
	return d.variables
}

// Clauses returns the clauses as signed variable numbers, without the
// terminating zero.
func (d *Dimacs) Clauses() [][]int {
	return d.clauses
}

// Name returns the name given to variable v by a "c <name> <v>"
// comment line, or the variable number itself.
func (d *Dimacs) Name(v int) string {
	if name, ok := d.names[v]; ok {
		return name
	}
	return strconv.Itoa(v)
}

var (
	commentLine = regexp.MustCompile(`^c(\s.*)?$`)
	namedLine   = regexp.MustCompile(`^c\s+(\S+)\s+(\d+)$`)
	headerLine  = regexp.MustCompile(`^p\s+cnf\s+(\d+)\s+(\d+)$`)
	clauseLine  = regexp.MustCompile(`^(-?\d+\s+)*0$`)
)

// NewDimacs parses the DIMACS formatted stream afforded by dimacsReader.
func NewDimacs(dimacsReader io.Reader) (*Dimacs, error) {
	scanner := bufio.NewScanner(dimacsReader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	d := &Dimacs{names: map[int]string{}}
	variableSet := map[int]struct{}{}
	numVariables, numClauses := 0, 0
	header := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case namedLine.MatchString(line):
			m := namedLine.FindStringSubmatch(line)
			v, _ := strconv.Atoi(m[2])
			d.names[v] = m[1]
		case commentLine.MatchString(line):
			continue
		case headerLine.MatchString(line):
			if header {
				return nil, fmt.Errorf("invalid dimacs format: duplicate header (%s)", line)
			}
			m := headerLine.FindStringSubmatch(line)
			numVariables, _ = strconv.Atoi(m[1])
			numClauses, _ = strconv.Atoi(m[2])
			d.clauses = make([][]int, 0, numClauses)
			header = true
		case clauseLine.MatchString(line):
			if !header {
				return nil, fmt.Errorf("invalid dimacs format: missing header 'p cnf <variables> <clauses>'")
			}
			clause, err := parseClause(strings.Fields(line), numVariables)
			if err != nil {
				return nil, fmt.Errorf("invalid clause (%s): %w", line, err)
			}
			// remember variables seen for final validation
			for _, lit := range clause {
				variableSet[abs(lit)] = struct{}{}
			}
			d.clauses = append(d.clauses, clause)
		default:
			return nil, fmt.Errorf("invalid dimacs command: %s", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dimacs data: %w", err)
	}

	if numVariables == 0 || numClauses == 0 || len(d.clauses) == 0 {
		return nil, fmt.Errorf("invalid format: no variables or clauses found")
	}
	if len(d.clauses) != numClauses {
		return nil, fmt.Errorf("invalid format: header declares %d clauses, found %d", numClauses, len(d.clauses))
	}
	if len(variableSet) != numVariables {
		return nil, fmt.Errorf("invalid format: header declares %d variables, found %d", numVariables, len(variableSet))
	}

	d.variables = make([]string, 0, numVariables)
	for i := 1; i <= numVariables; i++ {
		d.variables = append(d.variables, strconv.Itoa(i))
	}
	return d, nil
}

func parseClause(terms []string, numVariables int) ([]int, error) {
	// drop the terminating 0
	terms = terms[:len(terms)-1]
	clause := make([]int, 0, len(terms))
	for _, term := range terms {
		lit, err := strconv.Atoi(term)
		if err != nil {
			return nil, fmt.Errorf("%s is not a number", term)
		}
		if lit == 0 {
			return nil, fmt.Errorf("0 is not a valid variable")
		}
		if abs(lit) > numVariables {
			return nil, fmt.Errorf("%s is not a valid variable", term)
		}
		clause = append(clause, lit)
	}
	return clause, nil
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
