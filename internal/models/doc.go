// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - Person: someone taking part in shared expenses, identified by name
//   - Expense: money fronted by one person on behalf of a set of participants
//   - PersonRemoval: what removing a person did to the recorded expenses
//
// Balances and settlements are never stored. They are derived from people
// and expenses by the calculator package every time they are needed.
//
// # Design Principles
//
// 1. **Names are identity**: people are referenced by name strings everywhere
// 2. **Exact money**: every amount is a decimal.Decimal with two fractional digits
// 3. **Stable expense IDs**: expenses get a UUID at creation; list position is
// only a presentation concern
// 4. **No pointers between models**: relationships are expressed with names and IDs
package models
