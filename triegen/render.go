package triegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/format"
	"regexp"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/ava12/pegx/charset"
)

var log = commonlog.GetLogger("pegx.triegen")

var identRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

// Trie is a built set with its Go variable name.
type Trie struct {
	Var string
	*charset.Trie
}

// Generate builds all configured sets.
func Generate(cfg *Config) ([]Trie, error) {
	res := make([]Trie, 0, len(cfg.Sets))
	for i := range cfg.Sets {
		sc := &cfg.Sets[i]
		varName := sc.Var
		if varName == "" {
			varName = VarName(sc.Name)
		}
		if !identRe.MatchString(varName) {
			return nil, invalidNameError("variable", varName)
		}

		t, e := sc.Build()
		if e != nil {
			return nil, e
		}

		log.Infof("set %s: %d chunks in plane 0, %d blocks and %d chunks in planes 1-16",
			sc.Name, len(t.Tree2Level2), len(t.Tree3Level2)>>6, len(t.Tree3Level3))
		res = append(res, Trie{varName, t})
	}
	return res, nil
}

// VarName converts set name to exported Go identifier: "ID_Start" becomes "IDStart".
func VarName(name string) string {
	var sb strings.Builder
	upper := true
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
			if upper {
				c -= 'a' - 'A'
			}
			upper = false
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			upper = false
		default:
			upper = true
			continue
		}
		sb.WriteRune(c)
	}

	res := sb.String()
	if res == "" || res[0] >= '0' && res[0] <= '9' {
		res = "Set" + res
	}
	return res
}

// RenderGo renders tries as gofmt-ed Go source declaring one variable per trie.
func RenderGo(packageName string, tries []Trie) ([]byte, error) {
	if !identRe.MatchString(packageName) {
		return nil, invalidNameError("package", packageName)
	}

	var buffer bytes.Buffer
	buffer.WriteString("// Code generated with pegxgen.\n\n" +
		"package " + packageName + "\n\n" +
		"import \"github.com/ava12/pegx/charset\"\n")

	for _, t := range tries {
		buffer.WriteString(fmt.Sprintf("\nvar %s = &charset.Trie{\n\tName: %q,\n", t.Var, t.Name))
		writeChunks(&buffer, "Tree1Level1", t.Tree1Level1)
		writeIndexes(&buffer, "Tree2Level1", t.Tree2Level1)
		writeChunks(&buffer, "Tree2Level2", t.Tree2Level2)
		writeIndexes(&buffer, "Tree3Level1", t.Tree3Level1)
		writeIndexes(&buffer, "Tree3Level2", t.Tree3Level2)
		writeChunks(&buffer, "Tree3Level3", t.Tree3Level3)
		buffer.WriteString("}\n")
	}

	log.Debugf("formatting %d bytes of Go source", buffer.Len())
	return format.Source(buffer.Bytes())
}

func writeChunks(buffer *bytes.Buffer, field string, chunks []uint64) {
	buffer.WriteString("\t" + field + ": []uint64{")
	for i, c := range chunks {
		if i%4 == 0 {
			buffer.WriteString("\n\t\t")
		} else {
			buffer.WriteString(" ")
		}
		buffer.WriteString(fmt.Sprintf("0x%016x,", c))
	}
	buffer.WriteString("\n\t},\n")
}

func writeIndexes(buffer *bytes.Buffer, field string, indexes []uint8) {
	buffer.WriteString("\t" + field + ": []uint8{")
	for i, index := range indexes {
		if i%16 == 0 {
			buffer.WriteString("\n\t\t")
		} else {
			buffer.WriteString(" ")
		}
		buffer.WriteString(fmt.Sprintf("%d,", index))
	}
	buffer.WriteString("\n\t},\n")
}

// RenderJSON renders tries as JSON array.
func RenderJSON(tries []Trie) ([]byte, error) {
	list := make([]*charset.Trie, len(tries))
	for i, t := range tries {
		list[i] = t.Trie
	}
	return json.MarshalIndent(list, "", "  ")
}

// LoadJSON decodes and validates tries rendered by RenderJSON.
func LoadJSON(content []byte) ([]*charset.Trie, error) {
	var list []*charset.Trie
	if e := json.Unmarshal(content, &list); e != nil {
		return nil, e
	}

	for _, t := range list {
		if e := t.Validate(); e != nil {
			return nil, e
		}
	}
	return list, nil
}
