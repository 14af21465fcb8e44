package api

import (
	"splitzy/internal/models"
	"splitzy/internal/money"
	"splitzy/internal/service"
)

// Wire representations. Field names follow what the web client reads and
// writes, not Go conventions.

type userResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{UserID: u.ID, Username: u.Username, Email: u.Email, Phone: u.Phone}
}

type groupResponse struct {
	GroupID   string         `json:"groupid"`
	GroupName string         `json:"groupname"`
	Users     []userResponse `json:"users"`
}

func toGroupResponse(g *models.Group, members []*models.User) groupResponse {
	users := make([]userResponse, len(members))
	for i, u := range members {
		users[i] = toUserResponse(u)
	}
	return groupResponse{GroupID: g.ID, GroupName: g.Name, Users: users}
}

type expenseResponse struct {
	ExpenseID   string      `json:"expenseid"`
	GroupID     string      `json:"groupid"`
	Description string      `json:"description"`
	Amount      money.Money `json:"amount"`
	PaidBy      string      `json:"paidBy"`
	SplitType   string      `json:"splitType"`
	Date        int64       `json:"date"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ExpenseID:   e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		SplitType:   string(e.SplitType),
		Date:        e.CreatedAt,
	}
}

func toExpenseResponses(expenses []*models.Expense) []expenseResponse {
	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e)
	}
	return out
}

type splitResponse struct {
	UserID   string      `json:"userId"`
	Username string      `json:"username"`
	Amount   money.Money `json:"amount"`
}

func toSplitResponses(splits []service.SplitDetail) []splitResponse {
	out := make([]splitResponse, len(splits))
	for i, sp := range splits {
		out[i] = splitResponse{UserID: sp.UserID, Username: sp.Username, Amount: sp.Amount}
	}
	return out
}

type balanceResponse struct {
	Debtor   string      `json:"debtor"`
	Creditor string      `json:"creditor"`
	Amount   money.Money `json:"amount"`
	Display  string      `json:"display"`
}

func toBalanceResponses(balances []service.GroupBalance) []balanceResponse {
	out := make([]balanceResponse, len(balances))
	for i, b := range balances {
		out[i] = balanceResponse{Debtor: b.Debtor, Creditor: b.Creditor, Amount: b.Amount, Display: b.Display}
	}
	return out
}

type settlementResponse struct {
	SettlementID string      `json:"settlementid"`
	GroupID      string      `json:"groupid"`
	PaidBy       string      `json:"paidby"`
	PaidTo       string      `json:"paidto"`
	Amount       money.Money `json:"amount"`
	Date         int64       `json:"date"`
}

func toSettlementResponse(s *models.Settlement) settlementResponse {
	return settlementResponse{
		SettlementID: s.ID,
		GroupID:      s.GroupID,
		PaidBy:       s.PaidBy,
		PaidTo:       s.PaidTo,
		Amount:       s.Amount,
		Date:         s.CreatedAt,
	}
}

func toSettlementResponses(settlements []*models.Settlement) []settlementResponse {
	out := make([]settlementResponse, len(settlements))
	for i, s := range settlements {
		out[i] = toSettlementResponse(s)
	}
	return out
}
