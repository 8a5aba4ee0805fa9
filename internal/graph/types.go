package graph

import (
	"inkwell/internal/loader"
	"inkwell/internal/models"

	"github.com/graphql-go/graphql"
)

// buildTypes wires the object graph. Relationship fields prefer associations
// already loaded with the parent row and fall back to the request's loaders,
// so sibling selections share batched queries.
func (b *builder) buildTypes() {
	b.locationType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"street":   &graphql.Field{Type: graphql.String},
			"city":     &graphql.Field{Type: graphql.String},
			"state":    &graphql.Field{Type: graphql.String},
			"country":  &graphql.Field{Type: graphql.String},
			"timezone": &graphql.Field{Type: graphql.String},
		},
	})

	b.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.Int},
			"title":        &graphql.Field{Type: graphql.String},
			"firstName":    &graphql.Field{Type: graphql.String},
			"lastName":     &graphql.Field{Type: graphql.String},
			"gender":       &graphql.Field{Type: graphql.String},
			"email":        &graphql.Field{Type: graphql.String},
			"dateOfBirth":  &graphql.Field{Type: graphql.DateTime},
			"registerDate": &graphql.Field{Type: graphql.DateTime},
			"phone":        &graphql.Field{Type: graphql.String},
			"picture":      &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{
				Type: b.locationType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user := userSource(p.Source)
					if user == nil {
						return nil, nil
					}
					if user.Location != nil {
						return user.Location, nil
					}
					if user.LocationID == 0 {
						return nil, nil
					}
					if l := loader.For(p.Context); l != nil {
						return l.LocationByID.Load(p.Context, user.LocationID)()
					}
					return nil, nil
				},
			},
		},
	})

	b.postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"text":        &graphql.Field{Type: graphql.String},
			"image":       &graphql.Field{Type: graphql.String},
			"likes":       &graphql.Field{Type: graphql.Int},
			"link":        &graphql.Field{Type: graphql.String},
			"publishDate": &graphql.Field{Type: graphql.DateTime},
			"ownerId":     &graphql.Field{Type: graphql.Int},
			"owner": &graphql.Field{
				Type: b.userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post := postSource(p.Source)
					if post == nil {
						return nil, nil
					}
					if post.Owner != nil {
						return post.Owner, nil
					}
					if l := loader.For(p.Context); l != nil {
						return l.UserByID.Load(p.Context, post.OwnerID)()
					}
					return b.r.Users.GetUser(p.Context, post.OwnerID)
				},
			},
			"tags": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post := postSource(p.Source)
					if post == nil {
						return nil, nil
					}
					if post.Tags != nil {
						return tagNames(post.Tags), nil
					}
					if l := loader.For(p.Context); l != nil {
						tags, err := l.TagsByPostID.Load(p.Context, post.ID)()
						if err != nil {
							return nil, err
						}
						return tagNames(tags), nil
					}
					return []string{}, nil
				},
			},
		},
	})

	b.commentType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"message":     &graphql.Field{Type: graphql.String},
			"publishDate": &graphql.Field{Type: graphql.DateTime},
			"ownerId":     &graphql.Field{Type: graphql.Int},
			"postId":      &graphql.Field{Type: graphql.Int},
			"owner": &graphql.Field{
				Type: b.userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					comment := commentSource(p.Source)
					if comment == nil {
						return nil, nil
					}
					if comment.Owner != nil {
						return comment.Owner, nil
					}
					if l := loader.For(p.Context); l != nil {
						return l.UserByID.Load(p.Context, comment.OwnerID)()
					}
					return b.r.Users.GetUser(p.Context, comment.OwnerID)
				},
			},
			"post": &graphql.Field{
				Type: b.postType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					comment := commentSource(p.Source)
					if comment == nil {
						return nil, nil
					}
					if comment.Post != nil {
						return comment.Post, nil
					}
					if l := loader.For(p.Context); l != nil {
						return l.PostByID.Load(p.Context, comment.PostID)()
					}
					return b.r.Posts.GetPost(p.Context, comment.PostID)
				},
			},
		},
	})

	// posts and comments on User close a type cycle, added after construction.
	b.userType.AddFieldConfig("posts", &graphql.Field{
		Type: graphql.NewList(b.postType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user := userSource(p.Source)
			if user == nil {
				return nil, nil
			}
			if l := loader.For(p.Context); l != nil {
				return l.PostsByOwnerID.Load(p.Context, user.ID)()
			}
			return []models.Post{}, nil
		},
	})
	b.userType.AddFieldConfig("comments", &graphql.Field{
		Type: graphql.NewList(b.commentType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user := userSource(p.Source)
			if user == nil {
				return nil, nil
			}
			if l := loader.For(p.Context); l != nil {
				return l.CommentsByOwnerID.Load(p.Context, user.ID)()
			}
			return []models.Comment{}, nil
		},
	})
	b.postType.AddFieldConfig("comments", &graphql.Field{
		Type: graphql.NewList(b.commentType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			post := postSource(p.Source)
			if post == nil {
				return nil, nil
			}
			if l := loader.For(p.Context); l != nil {
				return l.CommentsByPostID.Load(p.Context, post.ID)()
			}
			return []models.Comment{}, nil
		},
	})

	b.tagType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Tag",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.Int},
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	b.userPageType = pageType("UserPage", b.userType)
	b.postPageType = pageType("PostPage", b.postType)
	b.commentPageType = pageType("CommentPage", b.commentType)

	// Tag.posts reuses the paginated tag listing so the envelope convention
	// holds on nested selections too.
	b.tagType.AddFieldConfig("posts", &graphql.Field{
		Type: b.postPageType,
		Args: listArgs(),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			tag, ok := p.Source.(*models.Tag)
			if !ok || tag == nil {
				return nil, nil
			}
			return b.r.Posts.ListPostsByTag(p.Context, tag.Name, listParams(p))
		},
	})
}

// pageType builds the {data, total, page, limit} envelope for an item type.
func pageType(name string, item *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"data":  &graphql.Field{Type: graphql.NewList(item)},
			"total": &graphql.Field{Type: graphql.Int},
			"page":  &graphql.Field{Type: graphql.Int},
			"limit": &graphql.Field{Type: graphql.Int},
		},
	})
}

func (b *builder) buildInputs() {
	b.locationInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LocationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"street":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"city":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"state":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"country":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"timezone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	// Required fields stay nullable at the schema level so the validation
	// pass can answer with its categorized error instead of a parse failure.
	b.createUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"firstName":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"lastName":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"gender":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"dateOfBirth": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"phone":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"picture":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"location":    &graphql.InputObjectFieldConfig{Type: b.locationInput},
		},
	})

	b.updateUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"firstName":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"lastName":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"gender":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"dateOfBirth": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"phone":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"picture":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"location":    &graphql.InputObjectFieldConfig{Type: b.locationInput},
		},
	})

	b.createPostInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreatePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"text":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"image": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"likes": &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"link":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"tags":  &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"owner": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	b.updatePostInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdatePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"text":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"image": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"likes": &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"link":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"tags":  &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
		},
	})

	b.createCommentInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateCommentInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"message": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"owner":   &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"post":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})
}
