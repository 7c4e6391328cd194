package service

import "budgetmate/internal/model"

func defaultArticles() []model.Article {
	return []model.Article{
		{
			Title:       "50/30/20 Rule Explained",
			Description: "Learn how to split your income into needs, wants, and savings for better financial health.",
			URL:         "https://www.investopedia.com/ask/answers/022916/what-502030-budget-rule.asp",
			IconName:    "pie-chart",
			Color:       "#E3823C",
			Category:    "budgeting",
		},
		{
			Title:       "Emergency Fund Basics",
			Description: "Why you need an emergency fund and how much you should save.",
			URL:         "https://www.nerdwallet.com/article/banking/emergency-fund-why-it-matters",
			IconName:    "savings",
			Color:       "#4CAF50",
			Category:    "savings",
		},
		{
			Title:       "Investing for Beginners",
			Description: "A simple guide to starting your investment journey.",
			URL:         "https://www.investopedia.com/articles/basics/06/invest1000.asp",
			IconName:    "trending-up",
			Color:       "#433DA3",
			Category:    "investing",
		},
		{
			Title:       "Debt Repayment Strategies",
			Description: "Compare the Snowball vs. Avalanche methods to pay off debt faster.",
			URL:         "https://www.ramseysolutions.com/debt/debt-snowball-vs-debt-avalanche",
			IconName:    "money-off",
			Color:       "#E33C3C",
			Category:    "debt",
		},
		{
			Title:       "Smart Grocery Shopping",
			Description: "Tips to save money on your monthly food budget.",
			URL:         "https://www.thekitchn.com/10-smart-tips-for-grocery-shopping-on-a-budget-229420",
			IconName:    "shopping-cart",
			Color:       "#D7C7EC",
			Category:    "budgeting",
		},
		{
			Title:       "Credit Card Management",
			Description: "How to use credit cards wisely and avoid debt traps.",
			URL:         "https://www.nerdwallet.com/article/credit-cards/credit-card-basics",
			IconName:    "credit-card",
			Color:       "#FF6B6B",
			Category:    "credit",
		},
		{
			Title:       "Retirement Planning 101",
			Description: "Start planning for your retirement early with these essential tips.",
			URL:         "https://www.investopedia.com/retirement-planning-4689695",
			IconName:    "account-balance",
			Color:       "#4ECDC4",
			Category:    "retirement",
		},
		{
			Title:       "Understanding Credit Scores",
			Description: "Learn what affects your credit score and how to improve it.",
			URL:         "https://www.myfico.com/credit-education/credit-scores",
			IconName:    "assessment",
			Color:       "#95E1D3",
			Category:    "credit",
		},
		{
			Title:       "Tax Basics for Beginners",
			Description: "Essential tax knowledge everyone should know to save money.",
			URL:         "https://www.irs.gov/individuals/tax-basics-for-students",
			IconName:    "receipt",
			Color:       "#F38181",
			Category:    "taxes",
		},
		{
			Title:       "Building Passive Income",
			Description: "Explore ways to generate income without active work.",
			URL:         "https://www.investopedia.com/passive-income-ideas-8608228",
			IconName:    "attach-money",
			Color:       "#AA96DA",
			Category:    "income",
		},
		{
			Title:       "Insurance Essentials",
			Description: "Understanding different types of insurance and what you need.",
			URL:         "https://www.nerdwallet.com/article/insurance/insurance-basics",
			IconName:    "security",
			Color:       "#FCBAD3",
			Category:    "insurance",
		},
		{
			Title:       "Side Hustle Ideas",
			Description: "Discover profitable side hustles to boost your income.",
			URL:         "https://www.forbes.com/advisor/business/side-hustle-ideas/",
			IconName:    "work",
			Color:       "#FFFFD2",
			Category:    "income",
		},
		{
			Title:       "Real Estate Investing",
			Description: "Introduction to real estate investment for beginners.",
			URL:         "https://www.investopedia.com/mortgage/real-estate-investing-guide/",
			IconName:    "home",
			Color:       "#A8D8EA",
			Category:    "investing",
		},
		{
			Title:       "Financial Goal Setting",
			Description: "How to set and achieve your short-term and long-term financial goals.",
			URL:         "https://www.nerdwallet.com/article/finance/smart-financial-goals",
			IconName:    "flag",
			Color:       "#FFAAA5",
			Category:    "planning",
		},
		{
			Title:       "Cryptocurrency Basics",
			Description: "Understanding digital currencies and blockchain technology.",
			URL:         "https://www.investopedia.com/cryptocurrency-4427699",
			IconName:    "currency-bitcoin",
			Color:       "#FF8B94",
			Category:    "investing",
		},
	}
}

func defaultJobs() []model.Job {
	return []model.Job{
		{
			Title:           "Freelance Writing",
			Description:     "Write articles for blogs and publications",
			Difficulty:      model.DifficultyEasy,
			PayRange:        "₱ 50–200 per article",
			TimeCommitment:  "5–10 hrs/week",
			Tags:            []string{"Writing", "Remote", "Flexible"},
			FullDescription: "Create engaging content for various online platforms. Perfect for those with strong writing skills and creativity. No prior experience required, but a portfolio helps.",
			Requirements:    []string{"Good writing skills", "Basic grammar knowledge", "Internet connection"},
			HowToStart:      "Sign up on freelancing platforms like Upwork, Fiverr, or Freelancer.com. Create a compelling profile and start bidding on projects.",
		},
		{
			Title:           "Virtual Assistant",
			Description:     "Help businesses with administrative tasks",
			Difficulty:      model.DifficultyEasy,
			PayRange:        "₱ 15–25/hour",
			TimeCommitment:  "10–20 hrs/week",
			Tags:            []string{"Admin", "Remote", "Flexible"},
			FullDescription: "Provide administrative support to businesses remotely. Tasks include email management, scheduling, data entry, and customer service.",
			Requirements:    []string{"Organizational skills", "Good communication", "Computer literacy", "Reliable internet"},
			HowToStart:      "Create profiles on platforms like Upwork, OnlineJobs.ph, or Virtual Staff Finder. Highlight your organizational and communication skills.",
		},
		{
			Title:           "Graphic Design",
			Description:     "Create visuals for brands",
			Difficulty:      model.DifficultyMedium,
			PayRange:        "₱ 300–1000 per project",
			TimeCommitment:  "Flexible",
			Tags:            []string{"Creative", "Design", "Remote"},
			FullDescription: "Design logos, social media posts, and marketing materials. Requires knowledge of tools like Canva, Photoshop, or Illustrator.",
			Requirements:    []string{"Design software skills", "Creativity", "Portfolio"},
			HowToStart:      "Build a portfolio and showcase your work on Behance or Dribbble. Apply for gigs on freelancing sites.",
		},
	}
}
