package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo     *UserRepo
	sessionRepo  *SessionRepo
	projectRepo  *ProjectRepo
	tagRepo      *TagRepo
	likeRepo     *LikeRepo
	bookmarkRepo *BookmarkRepo
	commentRepo  *CommentRepo
	viewRepo     *ProjectViewRepo
	blogPostRepo *BlogPostRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:     NewUserRepo(db),
		sessionRepo:  NewSessionRepo(db),
		projectRepo:  NewProjectRepo(db),
		tagRepo:      NewTagRepo(db),
		likeRepo:     NewLikeRepo(db),
		bookmarkRepo: NewBookmarkRepo(db),
		commentRepo:  NewCommentRepo(db),
		viewRepo:     NewProjectViewRepo(db),
		blogPostRepo: NewBlogPostRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) SessionRepo() *SessionRepo {
	return d.sessionRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

func (d Database) BookmarkRepo() *BookmarkRepo {
	return d.bookmarkRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) ViewRepo() *ProjectViewRepo {
	return d.viewRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}
