package common

import (
	"fmt"
	"strings"

	"cex-withdraw-go/internal/models"
	"cex-withdraw-go/internal/wallet"
)

// Console widths; WideWidth fits a full EVM address plus status
const (
	DefaultWidth = 80
	WideWidth    = 100
)

// PrintSeparator prints a separator line with the specified character and width
func PrintSeparator(char string, width int) {
	fmt.Println(strings.Repeat(char, width))
}

// PrintSeparatorNewline prints a separator with a newline before it
func PrintSeparatorNewline(char string, width int) {
	fmt.Println("\n" + strings.Repeat(char, width))
}

// PrintHeader prints a formatted header with title and separators
func PrintHeader(title string, width int) {
	PrintSeparatorNewline("=", width)
	fmt.Println(title)
	PrintSeparator("=", width)
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(message string, width int) {
	PrintSeparatorNewline("=", width)
	fmt.Println(message)
	fmt.Println(strings.Repeat("=", width) + "\n")
}

// PrintBoxSeparator prints a box-drawing separator line (for sub-sections)
func PrintBoxSeparator(width int) {
	fmt.Println("├" + strings.Repeat("─", width))
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// BoxDetailPrefix returns the prefix for detail lines under list items
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}

// StatusMark renders a withdrawal outcome for console tables
func StatusMark(success bool) string {
	if success {
		return "✓ success"
	}
	return "✗ failed"
}

// PrintWalletReport prints the classification findings for a wallet list
func PrintWalletReport(report *wallet.Report, count int) {
	PrintHeader("WALLET CHECK", DefaultWidth)
	fmt.Printf("Wallets:          %d\n", count)
	fmt.Printf("Detected type:    %s\n", report.Type)
	fmt.Printf("Standard length:  %d\n", report.StandardLength)

	if len(report.NonStandard) > 0 {
		fmt.Printf("\n┌─ Non-standard length (%d)\n", len(report.NonStandard))
		printIssues(report.NonStandard)
	}

	if len(report.PrivateKeys) > 0 {
		fmt.Printf("\n┌─ Looks like a private key (%d)\n", len(report.PrivateKeys))
		printIssues(report.PrivateKeys)
	}
	PrintSeparator("=", DefaultWidth)
}

func printIssues(issues []wallet.Issue) {
	for i, issue := range issues {
		fmt.Printf("%s line %-5d %s (length %d)\n", BoxPrefix(i == len(issues)-1), issue.Line, issue.Address, issue.Length)
	}
}

// PrintWithdrawalSummary prints one row per wallet followed by the totals
func PrintWithdrawalSummary(venue, token string, result *models.WithdrawalResult) {
	PrintHeader(fmt.Sprintf("WITHDRAWAL SUMMARY: %s on %s", token, venue), WideWidth)

	addresses := result.Addresses()
	for i, address := range addresses {
		success, _ := result.Get(address)
		fmt.Printf("%s %-4d %-66s %s\n", BoxPrefix(i == len(addresses)-1), i+1, address, StatusMark(success))
	}

	succeeded, failed := result.Counts()
	PrintFooter(fmt.Sprintf("Succeeded: %d   Failed: %d   Total: %d", succeeded, failed, result.Len()), WideWidth)
}
