package prompts

const stockTemplate = `
Search {{sources}} for current data about the Indian listed stock "{{id}}".
Open the stock's detailed quote page on Moneycontrol first and cross-check with NSE or BSE.

Fields to extract:
- Full company name, sector, industry
- Current price (INR), today's change (INR) and change (%)
- Market capitalisation (INR crores)
- 52-week high and low (INR)
- Traded volume (shares)
- P/E, P/B, dividend yield (%), ROE (%), debt-to-equity

Return ONLY this JSON object:
{
  "symbol": "{{id}}",
  "name": string,
  "price": number,
  "change": number,
  "changePercent": number,
  "marketCap": number,
  "pe": number | null,
  "pb": number | null,
  "dividendYield": number | null,
  "roe": number | null,
  "debtToEquity": number | null,
  "high52w": number,
  "low52w": number,
  "volume": number,
  "sector": string,
  "industry": string,
  "source_urls": [string],
  "timestamp": "ISO-8601 string"
}

Use null only when a value is genuinely unavailable on every source.
`

const mutualFundTemplate = `
Search {{sources}} for data about the Indian mutual fund scheme with code "{{id}}".
Prefer the "Direct Plan - Growth" variant. Check the Risk & Ratios, Portfolio,
Performance and SIP Returns sections of each site and the scheme factsheet.

Fields to extract:
- Fund name, category, benchmark index, fund manager(s), current NAV
- AUM (INR crores), share of category AUM (%), total expense ratio (%)
- Annualised returns: 1Y, 3Y, 5Y, 10Y
- SIP returns (XIRR): 3Y, 5Y, 10Y
- 3Y risk: beta, standard deviation, Sharpe, Sortino, Jensen's alpha, Treynor,
  information ratio, maximum drawdown, upside capture, downside capture
- Allocation: large/mid/small cap (%), top 10 holdings concentration (%), turnover (%)
- Top 5 sectors with weight (%)
- Investment in category (%)

Return ONLY this JSON object:
{
  "code": "{{id}}",
  "name": string,
  "category": string,
  "benchmark": string,
  "fundManager": string,
  "nav": number,
  "aum": number,
  "category_aum_share_percent": number | null,
  "expenseRatio": number,
  "returns": { "1y": number | null, "3y": number | null, "5y": number | null, "10y": number | null },
  "sip_returns": { "3y": number | null, "5y": number | null, "10y": number | null },
  "risk": {
    "beta_3y": number | null,
    "volatility_stddev_percent": number | null,
    "sharpe_3y": number | null,
    "sortino_3y": number | null,
    "jensen_alpha_3y": number | null,
    "treynor_3y": number | null,
    "information_ratio_3y": number | null,
    "max_drawdown_3y_percent": number | null,
    "upside_capture_3y": number | null,
    "downside_capture_3y": number | null
  },
  "allocation": {
    "large_cap_percent": number | null,
    "mid_cap_percent": number | null,
    "small_cap_percent": number | null,
    "top10_holdings_concentration_percent": number | null,
    "turnover_percent": number | null
  },
  "sectors": [ { "name": string, "weight_percent": number | null } ],
  "category_exposure_percent": number | null,
  "source_urls": [string],
  "timestamp": "ISO-8601 string"
}

Only set a field to null after checking every listed source.
`

const ipoTemplate = `
Search {{sources}} for data about the Indian IPO identified by "{{id}}".
Open the IPO's detail page on Moneycontrol and Chittorgarh.

Fields to extract:
- Company full name (required, never return just the identifier), sector, industry
- Issue open, issue close and listing dates (YYYY-MM-DD)
- Price band low and high (INR), lot size (shares), issue size (INR crores)
- Grey Market Premium (GMP, INR)
- Subscription (times): QIB, NII, retail, total
- Listing gain (%) if already listed

Return ONLY this JSON object:
{
  "name": string,
  "companyName": string,
  "sector": string | null,
  "industry": string | null,
  "issueOpen": "YYYY-MM-DD" | null,
  "issueClose": "YYYY-MM-DD" | null,
  "listingDate": "YYYY-MM-DD" | null,
  "priceBandLow": number | null,
  "priceBandHigh": number | null,
  "lotSize": number | null,
  "gmp": number | null,
  "issueSize": number | null,
  "subscription": number | null,
  "subscriptionQIB": number | null,
  "subscriptionNII": number | null,
  "subscriptionRetail": number | null,
  "listingGainPercent": number | null,
  "source_urls": [string],
  "timestamp": "ISO-8601 string"
}
`

const ipoListTemplate = `
Search {{sources}} for {{scope}}.

For each IPO extract company name, sector, issue open and close dates,
listing date, price band (low and high, INR), lot size, GMP (INR), issue size
(INR crores), subscription (times) and listing gain (%).

Return ONLY a JSON array:
[
  {
    "name": string,
    "sector": string | null,
    "issueOpen": "YYYY-MM-DD" | null,
    "issueClose": "YYYY-MM-DD" | null,
    "listingDate": "YYYY-MM-DD" | null,
    "priceLow": number | null,
    "priceHigh": number | null,
    "lotSize": number | null,
    "gmp": number | null,
    "issueSize": number | null,
    "subscription": number | null,
    "listingGainPercent": number | null
  }
]

If there are none, return an empty array: []
`

const snapshotTemplate = `
Fetch the current market snapshot for Indian equity markets from {{sources}}.

Include:
- Nifty 50 and Sensex: value, change, change (%)
- Other major indices where available (Nifty Bank, Nifty IT, Nifty Midcap 100)
- Market breadth: advances, declines, unchanged

Return ONLY the JSON object following the market_snapshot schema.
`
