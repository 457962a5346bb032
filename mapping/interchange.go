package mapping

import (
	"github.com/edifix/edifix/assemble"
	"github.com/edifix/edifix/schema"
)

// defaultTransactionGroup is the group name spec §4.3 calls "typically
// SG4" — the repeating group carrying one UTILMD transaction each.
const defaultTransactionGroup = "SG4"

// Transaction is one transaction's split mapping result, per spec §4.3
// "Interchange mapping": the entity named Prozessdaten or Nachricht
// becomes Transaktionsdaten; every other mapped entity is grouped under
// Stammdaten.
type Transaction struct {
	Stammdaten        BO4E
	Transaktionsdaten any
}

// InterchangeResult is the full output of mapping one interchange: the
// message-level result (definitions scoped outside any transaction
// group) plus one Transaction per transaction-group repetition.
type InterchangeResult struct {
	Message      BO4E
	Transactions []Transaction
}

// InterchangeDriver runs the mapping engine at both the message level
// (against the whole tree) and the transaction level (once per
// transaction-group repetition), per spec §4.3 "Interchange mapping".
type InterchangeDriver struct {
	Engine                 *Engine
	MessageDefinitions     []*Definition
	TransactionDefinitions []*Definition

	// TransactionGroup names the repeating group that carries one
	// transaction each. Defaults to "SG4" if empty.
	TransactionGroup string
}

// Process maps tree into an InterchangeResult.
func (d *InterchangeDriver) Process(tree *assemble.Tree, resolver *schema.Resolver) (*InterchangeResult, error) {
	message, err := d.Engine.MapAll(tree, d.MessageDefinitions, resolver)
	if err != nil {
		return nil, err
	}

	groupName := d.TransactionGroup
	if groupName == "" {
		groupName = defaultTransactionGroup
	}

	result := &InterchangeResult{Message: message}

	txGroup := tree.Group(groupName)
	if txGroup == nil {
		return result, nil
	}

	for _, rep := range txGroup.Repetitions {
		subtree := &assemble.Tree{
			PreGroup: instanceSegments(rep),
			Groups:   rep.Children,
		}
		mapped, err := d.Engine.MapAll(subtree, d.TransactionDefinitions, resolver)
		if err != nil {
			return nil, err
		}
		result.Transactions = append(result.Transactions, splitTransaction(mapped))
	}

	return result, nil
}

// splitTransaction peels the Prozessdaten/Nachricht entity out of a
// transaction-level mapping result into Transaktionsdaten; every other
// entity is collected into Stammdaten.
func splitTransaction(mapped BO4E) Transaction {
	t := Transaction{Stammdaten: BO4E{}}
	for name, value := range mapped {
		if name == "Prozessdaten" || name == "Nachricht" {
			t.Transaktionsdaten = value
			continue
		}
		t.Stammdaten[name] = value
	}
	return t
}
