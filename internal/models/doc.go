// Package models defines the core domain models for Splitzy.
//
// # Models
//
//   - User: a registered account, referenced by ID everywhere
//   - Group: a named set of members who share expenses
//   - Expense: a shared cost paid by one member, split among participants
//   - Split: one participant's computed share of an expense
//   - Settlement: a direct payment between two members reducing their debt
//
// # Design Principles
//
//  1. Amounts are money.Money (integer paise), never float64.
//  2. Relationships use ID strings instead of pointers to avoid circular references.
//  3. Balances are derived, never stored: they are recomputed from expenses and
//     settlements on every read, so there is no cached total to drift out of sync.
package models
