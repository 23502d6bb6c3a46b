package search

import "regexp"

// Languages is the set of supported interface language codes.
var Languages = []string{"zh-CN", "en-US", "ja-JP", "ko-KR", "de-DE", "fr-FR"}

// IsSupportedLanguage reports whether code is one of the supported
// interface languages.
func IsSupportedLanguage(code string) bool {
	for _, lang := range Languages {
		if lang == code {
			return true
		}
	}
	return false
}

// aiModeLabels mark the start of the AI answer region, per language.
// Detection is opportunistic: the first label found anywhere in the page
// text wins, regardless of the requested language.
var aiModeLabels = []string{"AI 模式", "AI Mode", "AI モード", "AI 모드", "KI-Modus", "Mode IA"}

// searchResultLabels mark the regular result list that follows the AI
// answer region.
var searchResultLabels = []string{"搜索结果", "Search Results", "検索結果", "검색결과", "Suchergebnisse", "Résultats de recherche"}

// endMarkers are fallback boundaries for the answer span: related
// searches, feedback, help and footer labels across languages.
var endMarkers = []string{
	"相关搜索", "Related searches", "関連する検索", "관련 검색",
	"意见反馈", "Send feedback", "フィードバックを送信",
	"帮助", "Help", "ヘルプ",
	"隐私权", "Privacy", "プライバシー",
	"条款", "Terms", "利用規約",
}

// loadingKeywords are transient phrases shown while the answer is still
// being generated. The trailing ellipses on the English forms avoid
// matching final answer text.
var loadingKeywords = []string{
	"正在思考",
	"正在生成",
	"Thinking...",
	"Generating...",
}

// captchaKeywords trigger the human-intervention path when present in the
// page text, matched case-insensitively.
var captchaKeywords = []string{
	"异常流量",
	"我们的系统检测到",
	"验证您是真人",
	"unusual traffic",
	"automated requests",
	"prove you're not a robot",
	"verify you're human",
	"recaptcha",
	"captcha",
}

// AIContainerSelectors match the answer container in the DOM, newest first.
var AIContainerSelectors = []string{
	`div[data-subtree="aimc"]`,
	`div[data-attrid="wa:/m/0"]`,
	`[data-async-type="editableDirectAnswer"]`,
	`.wDYxhc`,
	`[data-md="50"]`,
}

// LoadingIndicatorSelectors match elements present only while the answer
// is still streaming.
var LoadingIndicatorSelectors = []string{
	`[data-loading="true"]`,
	`[aria-busy="true"]`,
	`.ai-loading-indicator`,
	`[data-generating="true"]`,
}

// FollowUpSelectors locate the follow-up input control, most specific
// first. Their presence doubles as the strongest completion signal.
var FollowUpSelectors = []string{
	`textarea[placeholder*="follow"]`,
	`textarea[placeholder*="追问"]`,
	`textarea[placeholder*="提问"]`,
	`textarea[placeholder*="Ask"]`,
	`textarea[aria-label*="follow"]`,
	`textarea[aria-label*="追问"]`,
	`input[placeholder*="follow"]`,
	`input[placeholder*="追问"]`,
	`div[contenteditable="true"][aria-label*="follow"]`,
	`div[contenteditable="true"][aria-label*="追问"]`,
	`textarea:not([name="q"])`,
	`div[contenteditable="true"]`,
}

// ConsentButtonLabels are the "accept all" labels of the cookie consent
// dialog across languages.
var ConsentButtonLabels = []string{
	"全部接受",
	"Accept all",
	"すべて同意",
	"모두 수락",
	"Alle akzeptieren",
	"Tout accepter",
}

// navPatterns remove UI and navigation boilerplate from an extracted
// answer span. Ordered per language; Latin-script patterns are
// case-insensitive.
var navPatterns = []*regexp.Regexp{
	// zh-CN
	regexp.MustCompile(`^AI 模式\s*`),
	regexp.MustCompile(`全部\s*图片\s*视频\s*新闻\s*更多`),
	regexp.MustCompile(`登录`),
	regexp.MustCompile(`AI 的回答未必正确无误，请注意核查`),
	regexp.MustCompile(`AI 回答可能包含错误。?\s*了解详情`),
	regexp.MustCompile(`请谨慎使用此类代码。?`),
	regexp.MustCompile(`\d+ 个网站`),
	regexp.MustCompile(`全部显示`),
	regexp.MustCompile(`查看相关链接`),
	regexp.MustCompile(`关于这条结果`),
	regexp.MustCompile(`搜索结果`),
	regexp.MustCompile(`相关搜索`),
	regexp.MustCompile(`意见反馈`),
	regexp.MustCompile(`帮助`),
	regexp.MustCompile(`隐私权`),
	regexp.MustCompile(`条款`),

	// en-US
	regexp.MustCompile(`(?i)^AI Mode\s*`),
	regexp.MustCompile(`(?i)All\s*Images\s*Videos\s*News\s*More`),
	regexp.MustCompile(`(?i)Sign in`),
	regexp.MustCompile(`(?i)AI responses may include mistakes\.?\s*Learn more`),
	regexp.MustCompile(`(?i)AI overview\s*`),
	regexp.MustCompile(`(?i)Use code with caution\.?`),
	regexp.MustCompile(`(?i)\d+ sites?`),
	regexp.MustCompile(`(?i)Show all`),
	regexp.MustCompile(`(?i)View related links`),
	regexp.MustCompile(`(?i)About this result`),
	regexp.MustCompile(`(?i)Search Results`),
	regexp.MustCompile(`(?i)Related searches`),
	regexp.MustCompile(`(?i)Send feedback`),
	regexp.MustCompile(`(?i)Help`),
	regexp.MustCompile(`(?i)Privacy`),
	regexp.MustCompile(`(?i)Terms`),
	regexp.MustCompile(`(?i)Accessibility links`),
	regexp.MustCompile(`(?i)Skip to main content`),
	regexp.MustCompile(`(?i)Accessibility help`),
	regexp.MustCompile(`(?i)Accessibility feedback`),
	regexp.MustCompile(`(?i)Filters and topics`),
	regexp.MustCompile(`(?i)AI Mode response is ready`),

	// ja-JP
	regexp.MustCompile(`^AI モード\s*`),
	regexp.MustCompile(`すべて\s*画像\s*動画\s*ニュース\s*もっと見る`),
	regexp.MustCompile(`ログイン`),
	regexp.MustCompile(`AI の回答には間違いが含まれている場合があります。?\s*詳細`),
	regexp.MustCompile(`\d+ 件のサイト`),
	regexp.MustCompile(`すべて表示`),
	regexp.MustCompile(`検索結果`),
	regexp.MustCompile(`関連する検索`),
	regexp.MustCompile(`フィードバックを送信`),
	regexp.MustCompile(`ヘルプ`),
	regexp.MustCompile(`プライバシー`),
	regexp.MustCompile(`利用規約`),
	regexp.MustCompile(`ユーザー補助のリンク`),
	regexp.MustCompile(`メイン コンテンツにスキップ`),
	regexp.MustCompile(`ユーザー補助ヘルプ`),
	regexp.MustCompile(`ユーザー補助に関するフィードバック`),
	regexp.MustCompile(`フィルタとトピック`),
	regexp.MustCompile(`AI モードの回答が作成されました`),

	// ko-KR
	regexp.MustCompile(`^AI 모드\s*`),
	regexp.MustCompile(`전체\s*이미지\s*동영상\s*뉴스\s*더보기`),
	regexp.MustCompile(`로그인`),
	regexp.MustCompile(`AI 응답에 실수가 포함될 수 있습니다\.?\s*자세히 알아보기`),
	regexp.MustCompile(`\d+개 사이트`),
	regexp.MustCompile(`모두 표시`),
	regexp.MustCompile(`검색결과`),
	regexp.MustCompile(`관련 검색`),
	regexp.MustCompile(`의견 보내기`),
	regexp.MustCompile(`도움말`),
	regexp.MustCompile(`개인정보처리방침`),
	regexp.MustCompile(`약관`),

	// de-DE
	regexp.MustCompile(`(?i)^KI-Modus\s*`),
	regexp.MustCompile(`(?i)Alle\s*Bilder\s*Videos\s*News\s*Mehr`),
	regexp.MustCompile(`(?i)Anmelden`),
	regexp.MustCompile(`(?i)KI-Antworten können Fehler enthalten\.?\s*Weitere Informationen`),
	regexp.MustCompile(`(?i)\d+ Websites?`),
	regexp.MustCompile(`(?i)Alle anzeigen`),
	regexp.MustCompile(`(?i)Suchergebnisse`),
	regexp.MustCompile(`(?i)Ähnliche Suchanfragen`),
	regexp.MustCompile(`(?i)Feedback senden`),
	regexp.MustCompile(`(?i)Hilfe`),
	regexp.MustCompile(`(?i)Datenschutz`),
	regexp.MustCompile(`(?i)Nutzungsbedingungen`),

	// fr-FR
	regexp.MustCompile(`(?i)^Mode IA\s*`),
	regexp.MustCompile(`(?i)Tous\s*Images\s*Vidéos\s*Actualités\s*Plus`),
	regexp.MustCompile(`(?i)Connexion`),
	regexp.MustCompile(`(?i)Les réponses de l'IA peuvent contenir des erreurs\.?\s*En savoir plus`),
	regexp.MustCompile(`(?i)\d+ sites?`),
	regexp.MustCompile(`(?i)Tout afficher`),
	regexp.MustCompile(`(?i)Résultats de recherche`),
	regexp.MustCompile(`(?i)Recherches associées`),
	regexp.MustCompile(`(?i)Envoyer des commentaires`),
	regexp.MustCompile(`(?i)Aide`),
	regexp.MustCompile(`(?i)Confidentialité`),
	regexp.MustCompile(`(?i)Conditions`),
}
