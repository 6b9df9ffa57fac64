package seed

import (
	"time"

	"creatitube/pkg/models"
)

const sampleVideoURL = "https://www.w3schools.com/html/mov_bbb.mp4"

// SeedAccount is a bootstrap login with its plain-text password.
type SeedAccount struct {
	Email    string
	Name     string
	Password string
	Role     models.UserRole
}

var (
	craftyChloe    = models.User{Email: "chloe@test.com", Name: "Crafty Chloe", AvatarURL: models.AvatarFor("chloe")}
	pixelPete      = models.User{Email: "pete@test.com", Name: "Pixel Pete", AvatarURL: models.AvatarFor("pete")}
	sculptingSarah = models.User{Email: "sarah@test.com", Name: "Sculpting Sarah", AvatarURL: models.AvatarFor("sarah")}
	diyDan         = models.User{Email: "dan@test.com", Name: "DIY Dan", AvatarURL: models.AvatarFor("dan")}
	artfulAmy      = models.User{Email: "amy@test.com", Name: "Artful Amy", AvatarURL: models.AvatarFor("amy")}
	viewerOne      = models.User{Email: "viewer1@test.com", Name: "RandomViewer1", AvatarURL: models.AvatarFor("viewer1")}
	viewerTwo      = models.User{Email: "viewer2@test.com", Name: "CreativeFan22", AvatarURL: models.AvatarFor("viewer2")}
)

// AdminEmail owns the admin dashboard.
const AdminEmail = "admin@creati.tube"

func Accounts() []SeedAccount {
	return []SeedAccount{
		{Email: "chloe@test.com", Name: "Crafty Chloe", Password: "password123", Role: models.RoleViewer},
		{Email: "pete@test.com", Name: "Pixel Pete", Password: "password123", Role: models.RoleViewer},
		{Email: AdminEmail, Name: "App Owner", Password: "admin", Role: models.RoleAdmin},
	}
}

func Products() []models.Product {
	return []models.Product{
		{
			ID:          "prod1",
			Name:        "Handcrafted Miniature Cabin",
			Description: "A beautiful, detailed miniature cabin, handmade from real wood. Perfect for collectors or as a unique decor piece.",
			Price:       189.99,
			Quantity:    3,
			ImageURL:    "https://picsum.photos/seed/video1/400/225",
			SellerEmail: craftyChloe.Email,
		},
		{
			ID:          "prod2",
			Name:        "Set of 3 Clay Mushrooms",
			Description: "A whimsical set of three mushroom sculptures, hand-painted and crafted from durable polymer clay.",
			Price:       45.50,
			Quantity:    15,
			ImageURL:    "https://picsum.photos/seed/img3/800/600",
			SellerEmail: sculptingSarah.Email,
		},
	}
}

func comment(u models.User, text string, likes int64, at time.Time) models.Comment {
	return models.Comment{User: u, Text: text, Likes: likes, CreatedAt: at}
}

type videoSeed struct {
	id, title, description, duration string
	channel                          models.User
	views                            int64
	age                              time.Duration
	tags                             []string
	likes, dislikes                  int64
	comments                         []models.Comment
	productID                        string
}

// Videos returns the catalogue videos, newest insert first. Upload times are
// relative to now.
func Videos(now time.Time) []models.ContentItem {
	const day = 24 * time.Hour
	seeds := []videoSeed{
		{
			id: "1", title: "Building a Miniature Wooden Cabin from Scratch", channel: craftyChloe,
			description: "Watch me build a detailed miniature cabin using only natural materials. A relaxing and satisfying woodworking project.",
			duration:    "15:32", views: 1_200_000, age: 21 * day,
			tags:  []string{"woodworking", "miniatures", "crafting", "diy"},
			likes: 125000, dislikes: 1200,
			comments: []models.Comment{
				comment(viewerOne, "This is incredible! The level of detail is amazing.", 250, now.Add(-20*day)),
				comment(pixelPete, "Wow, such patience! Inspiring work.", 180, now.Add(-20*day)),
			},
			productID: "prod1",
		},
		{
			id: "2", title: "Creating a Retro Pixel Art Animation", channel: pixelPete,
			description: "A step-by-step tutorial on how I create my pixel art characters and animate a short loop in Aseprite.",
			duration:    "10:05", views: 850_000, age: 30 * day,
			tags:  []string{"pixel art", "animation", "tutorial", "aseprite"},
			likes: 92000, dislikes: 500,
			comments: []models.Comment{
				comment(artfulAmy, "Your tutorials are always so helpful! Thanks Pete!", 400, now.Add(-29*day)),
			},
		},
		{
			id: "3", title: "Time-lapse: Sculpting a Realistic Dragon Head", channel: sculptingSarah,
			description: "Join me for a full time-lapse of sculpting a dragon head from polymer clay. The process took over 40 hours!",
			duration:    "20:18", views: 3_500_000, age: 60 * day,
			tags:  []string{"sculpting", "polymer clay", "dragon", "art"},
			likes: 450000, dislikes: 3400,
			comments: []models.Comment{
				comment(viewerTwo, "Absolutely breathtaking! You are a master of your craft.", 1200, now.Add(-59*day)),
			},
		},
		{
			id: "4", title: "DIY Concrete Planters - Modern Home Decor", channel: diyDan,
			description: "Learn how to make these simple and stylish concrete planters for your home. A great weekend project!",
			duration:    "08:45", views: 500_000, age: 7 * day,
			tags:  []string{"diy", "home decor", "concrete", "crafting"},
			likes: 34000, dislikes: 800,
		},
		{
			id: "5", title: "Digital Painting a Fantasy Landscape in Procreate", channel: artfulAmy,
			description: "A full narrated tutorial on my process for painting epic fantasy landscapes on the iPad with Procreate.",
			duration:    "25:00", views: 2_100_000, age: 30 * day,
			tags:  []string{"digital painting", "procreate", "art", "tutorial"},
			likes: 210000, dislikes: 2100,
		},
		{
			id: "6", title: "Making a Stained Glass Window Panel", channel: craftyChloe,
			description: "Discover the beautiful art of stained glass. In this video, I show you the entire process from cutting glass to soldering.",
			duration:    "18:12", views: 780_000, age: 60 * day,
			tags:  []string{"stained glass", "crafting", "art", "diy"},
			likes: 89000, dislikes: 1500,
		},
	}

	videos := make([]models.ContentItem, 0, len(seeds))
	for _, s := range seeds {
		uploaded := now.Add(-s.age)
		comments := s.comments
		if comments == nil {
			comments = []models.Comment{}
		}
		videos = append(videos, models.ContentItem{
			ID:          s.id,
			Kind:        models.KindVideo,
			Title:       s.title,
			Description: s.description,
			Tags:        s.tags,
			Channel:     s.channel,
			Likes:       s.likes,
			Dislikes:    s.dislikes,
			Comments:    comments,
			ProductID:   s.productID,
			Video: &models.VideoDetails{
				VideoURL:     sampleVideoURL,
				ThumbnailURL: "https://picsum.photos/seed/video" + s.id + "/400/225",
				Duration:     s.duration,
				Views:        s.views,
				UploadedAt:   uploaded,
			},
			CreatedAt: uploaded,
		})
	}
	return videos
}

func Images(now time.Time) []models.ContentItem {
	const day = 24 * time.Hour
	image := func(id, title, description string, channel models.User, tags []string, likes, dislikes int64, comments []models.Comment, productID string) models.ContentItem {
		if comments == nil {
			comments = []models.Comment{}
		}
		return models.ContentItem{
			ID:          id,
			Kind:        models.KindImage,
			Title:       title,
			Description: description,
			Tags:        tags,
			Channel:     channel,
			Likes:       likes,
			Dislikes:    dislikes,
			Comments:    comments,
			ProductID:   productID,
			Image:       &models.ImageDetails{ImageURL: "https://picsum.photos/seed/" + id + "/800/600"},
			CreatedAt:   now.Add(-14 * day),
		}
	}

	return []models.ContentItem{
		image("img1", "Finished Oakwood Chair",
			"A handcrafted chair made from solid oak, finished with a natural oil. The joinery is all traditional mortise and tenon.",
			craftyChloe, []string{"woodworking", "furniture", "diy", "handmade"}, 12000, 50,
			[]models.Comment{comment(diyDan, "Beautiful work, the grain is gorgeous!", 15, now.Add(-13*day))}, ""),
		image("img2", "Cyberpunk Cityscape",
			"A detailed pixel art piece of a futuristic city at night.",
			pixelPete, []string{"pixel art", "artwork", "cyberpunk"}, 25000, 120, nil, ""),
		image("img3", "Clay Mushroom Sculptures",
			"A collection of small, whimsical mushroom sculptures made from polymer clay and painted with acrylics.",
			sculptingSarah, []string{"sculpting", "polymer clay", "art"}, 18000, 80,
			[]models.Comment{
				comment(artfulAmy, "These are adorable!", 22, now.Add(-13*day)),
				comment(viewerTwo, "I want a whole forest of these!", 18, now.Add(-12*day)),
			}, "prod2"),
	}
}

func Shorts() []models.Short {
	short := func(n, title string, channel models.User, views, likes, dislikes int64, comments ...models.Comment) models.Short {
		if comments == nil {
			comments = []models.Comment{}
		}
		return models.Short{
			ID:           "s" + n,
			Title:        title,
			Channel:      channel,
			ThumbnailURL: "https://picsum.photos/seed/short" + n + "/300/500",
			VideoURL:     sampleVideoURL,
			Views:        views,
			Likes:        likes,
			Dislikes:     dislikes,
			Comments:     comments,
		}
	}
	return []models.Short{
		short("1", "Quick Pottery Spin", sculptingSarah, 5_200_000, 520000, 5000,
			models.Comment{User: viewerOne, Text: "So satisfying!", Likes: 10}),
		short("2", "Pixel Art Drip Effect", pixelPete, 10_100_000, 1100000, 10000),
		short("3", "Satisfying wood carving", craftyChloe, 8_800_000, 950000, 8000),
		short("4", "Pouring Epoxy Resin", diyDan, 12_500_000, 1300000, 12000),
		short("5", "Watercolor splash technique", artfulAmy, 7_100_000, 800000, 7500),
	}
}
