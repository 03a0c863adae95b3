package dashboard

const defaultTemplate = `# Hi there, I'm {{.Username}} 👋

## 🤖 Open Source Contributions

| Metric | Count |
|--------|-------|
| Total contributions | {{.TotalContributions}} |
| Issues opened | {{.TotalIssues}} |
| Pull requests | {{.TotalPRs}} |
| Comments | {{.TotalComments}} |
| Success rate | {{printf "%.2f" .SuccessRate}}% |

## 🏆 Top Repositories

{{.TopRepositories}}

## 📅 Recent Activity

{{.RecentActivity}}

---
_Updated automatically from the contribution ledger._
`
