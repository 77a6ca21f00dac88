package records

import (
	"fmt"
	"strconv"
	"strings"
)

// RootParentID marks an org without a parent.
const RootParentID = 0

const tokensPerLine = 3

// OrgRecord is one parsed line of the org hierarchy input.
type OrgRecord struct {
	ID       int    `json:"id"`
	ParentID int    `json:"parent_id"`
	Name     string `json:"name"`
}

// IsRoot reports whether the record carries the root parent sentinel.
func (r OrgRecord) IsRoot() bool {
	return r.ParentID == RootParentID
}

// UserRecord is one parsed line of the user data input.
type UserRecord struct {
	UserID   int `json:"user_id"`
	OrgID    int `json:"org_id"`
	NumFiles int `json:"num_files"`
}

// FormatError is returned when a line does not have the expected shape.
type FormatError struct {
	Line    string
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Line)
}

func splitLine(line string) []string {
	tokens := strings.Split(line, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	return tokens
}

// ParseOrg parses "id, parentId, name". A parent field that is not an
// integer (typically the literal "null") yields RootParentID.
func ParseOrg(line string) (OrgRecord, error) {
	tokens := splitLine(line)
	if len(tokens) != tokensPerLine {
		return OrgRecord{}, &FormatError{Line: line, Message: "Invalid line found in Org hierarchy input file"}
	}

	id, err := strconv.Atoi(tokens[0])
	if err != nil {
		return OrgRecord{}, err
	}

	parentID, err := strconv.Atoi(tokens[1])
	if err != nil {
		parentID = RootParentID
	}

	return OrgRecord{ID: id, ParentID: parentID, Name: tokens[2]}, nil
}

// ParseUser parses "userId, orgId, numFiles". Every field must be an integer.
func ParseUser(line string) (UserRecord, error) {
	tokens := splitLine(line)
	if len(tokens) != tokensPerLine {
		return UserRecord{}, &FormatError{Line: line, Message: "Invalid line found in User data input file"}
	}

	var fields [tokensPerLine]int
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return UserRecord{}, err
		}
		fields[i] = n
	}

	return UserRecord{UserID: fields[0], OrgID: fields[1], NumFiles: fields[2]}, nil
}
