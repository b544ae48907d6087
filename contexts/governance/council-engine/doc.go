// Package councilengine implements the Governance Council engine inside the
// governance context.
//
// The module owns the council decision core (membership, proposals, weighted
// voting, tally, dissent scarring), the append-only governance ledger, and
// ledger export through relay/projector workers. It keeps business rules in
// the domain/application layers and isolates infrastructure concerns behind
// ports and adapters.
package councilengine
