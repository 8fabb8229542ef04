package wenku

// TagType is the category of a tag.
type TagType string

// TagType constants.
const (
	TagCharacter    TagType = "character"
	TagOrganization TagType = "organization"
	TagSubject      TagType = "subject"
	TagArticleType  TagType = "article_type"
)

// Tag is a topical label derived from an article.
type Tag struct {
	Name string  `json:"name"`
	Type TagType `json:"type"`
}

// ArticleType is the genre of an article.
type ArticleType string

// ArticleType constants.
const (
	ArticleLecture     ArticleType = "lecture"
	ArticleTalk        ArticleType = "talk"
	ArticleMail        ArticleType = "mail"
	ArticleDeclaration ArticleType = "declaration"
	ArticleInstruction ArticleType = "instruction"
	ArticleComment     ArticleType = "comment"
	ArticleTelegram    ArticleType = "telegram"
	ArticleWritings    ArticleType = "writings"
)

// Tagger derives tags from an article.
type Tagger interface {
	Tags(a *Article) []Tag
}
