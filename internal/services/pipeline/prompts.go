package pipeline

import "strings"

// Prompts use {name} placeholders filled by renderPrompt. All report-facing
// text is Traditional Chinese.

func renderPrompt(prompt string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(prompt)
}

const hiddenLayerPrompt = `你是一位頂尖的投資研究分析師。這是 Hidden Processing Layer，用於內部數據處理。

## 你的任務

對比今日數據與昨日報告，識別「變化」並篩選高信號資訊。

## 輸入數據

### 昨日報告內容
{yesterday_report}

### 今日新聞
{news_data}

### 今日 SEC 公告
{sec_data}

### 今日 FDA 動態
{fda_data}

### 今日市場數據
{market_data}

---

## 處理規則

### 1. 變化識別
對比昨日報告與今日數據，識別：
- **延續**：昨日提到的主題今日持續發展
- **反轉**：昨日的預期與今日結果相反
- **新發現**：昨日未提及但今日出現的重要資訊
- **消失**：昨日關注但今日無後續的主題

### 2. 信號篩選
根據以下標準篩選高信號資訊：
- 對市場有直接、可量化的影響
- 涉及重要公司或行業
- 與投資決策直接相關
- 有明確的時間敏感性

### 3. 噪音過濾
過濾以下低信號資訊：
- 重複或冗餘的新聞
- 無實質內容的評論
- 過時或已反映在價格中的資訊
- 與投資無關的一般新聞

---

## 輸出格式（JSON）

` + "```json" + `
{
    "macro_changes": [
        {
            "type": "延續|反轉|新發現",
            "summary": "簡短描述",
            "impact": "對市場的具體影響",
            "related_assets": ["資產代碼"]
        }
    ],
    "industry_changes": [
        {
            "type": "延續|反轉|新發現",
            "industry": "行業名稱",
            "summary": "簡短描述",
            "impact": "對行業的具體影響",
            "related_tickers": ["股票代碼"]
        }
    ],
    "company_changes": [
        {
            "type": "延續|反轉|新發現",
            "ticker": "股票代碼",
            "summary": "簡短描述",
            "catalyst": "觸發因素",
            "action_signal": "觀察|買入信號|賣出信號"
        }
    ],
    "filtered_noise": [
        "被過濾的低信號新聞標題..."
    ],
    "yesterday_unavailable": false,
    "yesterday_note": ""
}
` + "```" + `

如果昨日報告不可用，設置 ` + "`yesterday_unavailable: true`" + ` 並在 ` + "`yesterday_note`" + ` 說明，同時所有變化類型標記為「新發現」。
`

const layer01Prompt = `你是一位美股盤前的專業投資研究分析師，請用繁體中文撰寫分層報告的前兩層。
{yesterday_warning}
## 輸入數據

### Hidden Layer 處理結果（JSON）
{hidden_layer_output}

### 今日市場數據
{market_data}

### 今日新聞
{news_data}

---

## 輸出要求

依序輸出以下兩個段落，標題格式必須完全一致：

### Layer 0: Executive Snapshot
- 3-5 條今日盤前最重要的結論，每條一句話
- 只寫「變化」，不重複昨日已知的背景

### Layer 1: What Changed Today
- 按宏觀 / 行業 / 公司分組列出今日變化
- 每條標註變化類型（延續 / 反轉 / 新發現）
- 嚴格基於輸入數據，缺資料時寫「無資料」

不要輸出其他段落，不要加入免責聲明。
`

const layer23Prompt = `你是一位美股盤前的專業投資研究分析師，請用繁體中文接續撰寫分層報告。

## 已完成的層

{layer_0_content}

{layer_1_content}

### 今日市場數據
{market_data}

---

## 輸出要求

依序輸出以下兩個段落，標題格式必須完全一致：

### Layer 2: Structural Interpretation
- 解讀今日變化背後的結構性因素（資金流向、利率環境、行業週期）
- 指出哪些變化是噪音、哪些有持續性

### Layer 3: Asset Allocation Implications
- 由 Layer 2 推導的資產配置含義
- 標明時間框架（短線 / 中線）與信心水平

只能基於已完成的層與市場數據推論，不可引入新的事實。
`

const layer45Prompt = `你是一位美股盤前的專業投資研究分析師，請用繁體中文完成分層報告的最後兩層。

## 已完成的層

{layer_0_content}

{layer_1_content}

{layer_2_content}

{layer_3_content}

### 觀察名單數據
{watchlist_data}

### 公司層級變化（來自 Hidden Layer）
{company_changes}

---

## 輸出要求

依序輸出以下兩個段落，標題格式必須完全一致：

### Layer 4: Equity Signals
分為兩個小節：
- 4A 觀察名單焦點：逐檔列出今日必看的觀察名單股票（代碼、原因、觀察重點），只能使用觀察名單數據內的代碼
- 4B 新發現：清單外因事件浮現的公司，代碼以 $TICKER 格式標註

### Layer 5: Decision Log
- 今日的觀察決策與檢核點（3-5 條）
- 每條註明觸發條件與對應動作

嚴格基於輸入數據，缺資料時寫「無資料」。
`

const newsSummaryPrompt = `你是一位財經編輯，請用繁體中文將今日盤前新聞整理成一段 150 字以內的摘要。

### 今日新聞
{news_data}

### 今日市場數據
{market_data}

要求：
- 單一段落，不用列點
- 只保留對美股盤前最重要的 3-4 件事
- 不要加入免責聲明
`
